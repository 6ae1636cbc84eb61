package transform

import "strings"

// PatchFlags tell the runtime which parts of a vnode can change.
type PatchFlags int32

const (
	FlagText PatchFlags = 1 << iota
	FlagClass
	FlagStyle
	FlagProps
	FlagFullProps
	FlagHydrateEvents
	FlagStableFragment
	FlagKeyedFragment
	FlagUnkeyedFragment
	FlagNeedPatch
	FlagDynamicSlots

	FlagHoisted PatchFlags = -1
	FlagBail    PatchFlags = -2
)

var flagNames = []struct {
	flag PatchFlags
	name string
}{
	{FlagText, "TEXT"},
	{FlagClass, "CLASS"},
	{FlagStyle, "STYLE"},
	{FlagProps, "PROPS"},
	{FlagFullProps, "FULL_PROPS"},
	{FlagHydrateEvents, "HYDRATE_EVENTS"},
	{FlagStableFragment, "STABLE_FRAGMENT"},
	{FlagKeyedFragment, "KEYED_FRAGMENT"},
	{FlagUnkeyedFragment, "UNKEYED_FRAGMENT"},
	{FlagNeedPatch, "NEED_PATCH"},
	{FlagDynamicSlots, "DYNAMIC_SLOTS"},
}

func (f PatchFlags) Has(flag PatchFlags) bool { return f&flag == flag }

func (f PatchFlags) String() string {
	switch f {
	case 0:
		return "NONE"
	case FlagHoisted:
		return "HOISTED"
	case FlagBail:
		return "BAIL"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.flag) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// SlotFlag marks how stable the slots of a component vnode are.
type SlotFlag uint8

const (
	SlotStable    SlotFlag = 1
	SlotDynamic   SlotFlag = 2
	SlotForwarded SlotFlag = 3
)

func slotFlagOf(dynamic bool) SlotFlag {
	if dynamic {
		return SlotDynamic
	}
	return SlotStable
}

func (s SlotFlag) String() string {
	switch s {
	case SlotStable:
		return "STABLE"
	case SlotDynamic:
		return "DYNAMIC"
	case SlotForwarded:
		return "FORWARDED"
	default:
		return "UNKNOWN"
	}
}
