// Package types defines the shared data structures for the gridcrawl engine.
// It holds plain records only. Behavior lives in the engine packages.
package types

import "fmt"

// Position is a cell on the board. X grows to the right, Y grows downward.
type Position struct {
	X int
	Y int
}

// Add returns the position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Cause records why a move is happening. It is carried through nested
// dispatch so listeners can tell a step from a push or a teleport.
type Cause int

const (
	CauseStep     Cause = iota // actor moved one square on its own
	CausePush                  // displaced by another actor
	CauseTeleport              // relocated by a portal
	CausePatrol                // autonomous move (enemy, saw)
)

var causeNames = [...]string{"step", "push", "teleport", "patrol"}

func (c Cause) String() string {
	if int(c) < len(causeNames) {
		return causeNames[c]
	}
	return "unknown"
}

// Move is the payload of both the intent and the event phase of a
// position change.
type Move struct {
	From  Position
	To    Position
	Cause Cause
}

// Delta returns the displacement of the move.
func (m Move) Delta() (dx, dy int) {
	return m.To.X - m.From.X, m.To.Y - m.From.Y
}

// Occupancy is the grid level an entity lives on. Exclusivity is per level.
type Occupancy int

const (
	Floor  Occupancy = iota // exits, switches, doors, portals
	Object                  // player, enemies, walls, boulders, saws
	Item                    // pickups
)

func (o Occupancy) String() string {
	switch o {
	case Floor:
		return "floor"
	case Object:
		return "object"
	case Item:
		return "item"
	default:
		return "unknown"
	}
}

// Kind is the closed set of entity kinds. The string value is the
// "kind" field of a level description record.
type Kind string

const (
	KindPlayer   Kind = "player"
	KindEnemy    Kind = "enemy"
	KindWall     Kind = "wall"
	KindExit     Kind = "exit"
	KindBoulder  Kind = "boulder"
	KindSwitch   Kind = "switch"
	KindDoor     Kind = "door"
	KindTreasure Kind = "treasure"
	KindKey      Kind = "key"
	KindSword    Kind = "sword"
	KindPotion   Kind = "invincibility"
	KindPortal   Kind = "portal"
	KindSaw      Kind = "saw"
)

// LevelDef is the parsed form of a level description file.
type LevelDef struct {
	Name     string      `json:"name,omitempty" yaml:"name,omitempty"`
	Width    int         `json:"width" yaml:"width"`
	Height   int         `json:"height" yaml:"height"`
	Entities []EntityDef `json:"entities" yaml:"entities"`
	Goal     GoalDef     `json:"goal" yaml:"goal"`
}

// EntityDef is a single entity record. Optional fields are pointers so a
// missing value can be told apart from a zero value.
type EntityDef struct {
	Kind        string `json:"kind" yaml:"kind"`
	X           int    `json:"x" yaml:"x"`
	Y           int    `json:"y" yaml:"y"`
	ID          *int   `json:"id,omitempty" yaml:"id,omitempty"`
	Activated   *bool  `json:"activated,omitempty" yaml:"activated,omitempty"`
	Orientation string `json:"orientation,omitempty" yaml:"orientation,omitempty"`
}

// GoalDef is a node of the goal-condition expression tree. Op is "AND",
// "OR" or a leaf objective name.
type GoalDef struct {
	Op       string    `json:"op" yaml:"op"`
	Children []GoalDef `json:"children,omitempty" yaml:"children,omitempty"`
}

// ItemUsed is emitted by a usable item after a successful use.
type ItemUsed struct {
	Before int
	After  int
}

// Event is a journal notification emitted by the simulation during a step.
type Event struct {
	Type string
	Data map[string]any
}

// Journal event types.
const (
	EventItemPickedUp   = "item_picked_up"
	EventItemUsed       = "item_used"
	EventItemSpent      = "item_spent"
	EventEnemyKilled    = "enemy_killed"
	EventPlayerKilled   = "player_killed"
	EventDoorOpened     = "door_opened"
	EventSwitchPressed  = "switch_pressed"
	EventSwitchReleased = "switch_released"
	EventTeleported     = "teleported"
	EventExitReached    = "exit_reached"
	EventLevelComplete  = "level_complete"
)

// Command is the parsed representation of a player command.
type Command struct {
	Verb string // "move", "wait", "take", "look", "inventory", "goal"
	DX   int
	DY   int
	Dir  string // canonical direction name for "move"
}

// Result is the output of a single game step.
type Result struct {
	Moved  bool
	Events []Event
	Output []string
}
