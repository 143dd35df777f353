package charger

import (
	"chargecode-go/bus"
	"chargecode-go/types"
)

// Address of the charger capability called name.
func Address(name string) types.CapabilityAddress {
	return types.CapabilityAddress{Domain: "power", Kind: types.KindCharger, Name: name}
}

// hal/cap/<domain>/<kind>/<name>/...
func capBase(name string) bus.Topic {
	a := Address(name)
	return bus.T("hal", "cap", a.Domain, string(a.Kind), a.Name)
}

func TopicInfo(name string) bus.Topic   { return capBase(name).Append("info") }
func TopicStatus(name string) bus.Topic { return capBase(name).Append("status") }
func TopicValue(name string) bus.Topic  { return capBase(name).Append("value") }
func TopicEvent(name string) bus.Topic  { return capBase(name).Append("event") }

// hal/cap/power/charger/<name>/control/<verb>
func TopicControl(name, verb string) bus.Topic { return capBase(name).Append("control", verb) }

func ctrlWildcard(name string) bus.Topic { return capBase(name).Append("control", bus.Single) }
