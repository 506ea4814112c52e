package engine

import (
	"fmt"

	"github.com/nathoo/gridcrawl/types"
	"github.com/nathoo/gridcrawl/view"
)

// narrate turns a journal event into a line of output. Events without a
// line return "".
func narrate(ev types.Event) string {
	switch ev.Type {
	case types.EventItemPickedUp:
		return fmt.Sprintf("You pick up the %s.", kindName(ev.Data["kind"]))
	case types.EventItemUsed:
		return fmt.Sprintf("You use the %s on the %s.", kindName(ev.Data["kind"]), kindName(ev.Data["target"]))
	case types.EventItemSpent:
		return fmt.Sprintf("Your %s is used up.", kindName(ev.Data["kind"]))
	case types.EventEnemyKilled:
		return "An enemy is slain."
	case types.EventPlayerKilled:
		return "You have been killed."
	case types.EventDoorOpened:
		return "The door unlocks."
	case types.EventSwitchPressed:
		return "A switch clicks down."
	case types.EventSwitchReleased:
		return "A switch clicks up."
	case types.EventTeleported:
		return fmt.Sprintf("A portal carries you from %v to %v.", ev.Data["from"], ev.Data["to"])
	case types.EventExitReached:
		return "You reach the exit."
	case types.EventLevelComplete:
		return "Level complete!"
	default:
		return ""
	}
}

func kindName(v any) string {
	s, _ := v.(string)
	return view.Name(types.Kind(s))
}
