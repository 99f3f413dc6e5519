// Package types defines the shared data structures for the journey engine.
// This package contains only type definitions: no logic, no methods.
package types

// Command is the parsed representation of a player command.
type Command struct {
	Action string
	Target string // optional
}

// Flag names one boolean quest flag in GameState. Content refers to flags by
// their string names ("has_weapon", "bandits_defeated", ...).
type Flag int

const (
	FlagNone Flag = iota
	FlagHasWeapon
	FlagHasPotion
	FlagHasCompanions
	FlagBanditsDefeated
	FlagMetVee
)

// EffectKind identifies what an Effect does when it fires.
type EffectKind int

const (
	EffectSay         EffectKind = iota + 1 // print Text
	EffectAddPower                          // AmuletPower += Amount
	EffectSetFlag                           // set Flag to true
	EffectSetFlagOnce                       // set Flag and print Text, only when Flag was false
)

// Effect is a single typed state mutation attached to content at world
// construction time.
type Effect struct {
	Kind   EffectKind
	Text   string
	Amount int
	Flag   Flag
}

// ConditionKind identifies what a Condition checks.
type ConditionKind int

const (
	CondHasItem ConditionKind = iota + 1
	CondFlagSet
	CondFlagNot
	CondPowerAtLeast
	CondInRoom
)

// Condition is a predicate over the game state.
type Condition struct {
	Kind   ConditionKind
	Item   string
	Flag   Flag
	Amount int
	Room   string
}

// Item is an object that lives in exactly one room or in the inventory.
type Item struct {
	ID          string
	Name        string
	Description string
	Takeable    bool
	UseText     string // shown once on first use; empty means not usable
	Used        bool
	OnTake      []Effect
	OnUse       []Effect
}

// Encounter describes the combat behaviour of a character.
type Encounter struct {
	Requires  []Condition
	Victory   []string
	Defeat    []string
	OnVictory []Effect
	Reward    *Item // spawned into the room on victory
}

// Character is a non-player entity with dialogue and optional combat.
type Character struct {
	ID          string
	Name        string
	Description string
	Dialogue    map[string]string // verb → line
	Mood        string            // informational
	Takeable    bool
	OnTalk      []Effect
	Encounter   *Encounter // nil: the character can't be fought
}

// Room is a location node in the world graph.
type Room struct {
	ID          string
	Name        string
	Description string
	Items       []*Item      // display order
	Characters  []*Character // display order
	Exits       map[string]string
	ExitOrder   []string // display order of Exits
	Visited     bool
}

// GameDef holds game metadata from the content files.
type GameDef struct {
	Title    string
	Author   string
	Version  string
	Start    string   // starting room ID
	Welcome  []string // banner shown before the intro
	Intro    []string
	Help     []string
	Victory  []string // banner shown when the win condition holds
	Farewell string   // printed after "quit"
}

// GameState holds the quest flags and counters.
type GameState struct {
	AmuletPower     int
	BanditsDefeated bool // set when the guardian falls; the win check reads it
	MetVee          bool // set on first talk with the wizard
	HasWeapon       bool
	HasPotion       bool
	HasCompanions   bool // reserved: no stock content sets it
}

// Player holds the player's runtime state.
type Player struct {
	Location  string
	Inventory []*Item // acquisition order
}

// State is the complete mutable game state.
type State struct {
	Player    Player
	Rooms     map[string]*Room
	Game      GameState
	TurnCount int
}

// Event is emitted after a state mutation.
type Event struct {
	Type string
	Data map[string]any
}

// Result is the output of a single game step.
type Result struct {
	Output []string
	Events []Event
	Quit   bool
	Won    bool
}
