// internal/domain/exercise.go
package domain

// MuscleGroup is the primary muscle group an exercise targets.
type MuscleGroup string

const (
	MuscleGroupChest     MuscleGroup = "Chest"
	MuscleGroupBack      MuscleGroup = "Back"
	MuscleGroupLegs      MuscleGroup = "Legs"
	MuscleGroupShoulders MuscleGroup = "Shoulders"
	MuscleGroupArms      MuscleGroup = "Arms"
	MuscleGroupCore      MuscleGroup = "Core"
	MuscleGroupFullBody  MuscleGroup = "Full Body"
)

func (m MuscleGroup) IsValid() bool {
	switch m {
	case MuscleGroupChest, MuscleGroupBack, MuscleGroupLegs, MuscleGroupShoulders,
		MuscleGroupArms, MuscleGroupCore, MuscleGroupFullBody:
		return true
	}
	return false
}

// Equipment is what an exercise needs to be performed.
type Equipment string

const (
	EquipmentBodyweight      Equipment = "Bodyweight"
	EquipmentDumbbells       Equipment = "Dumbbells"
	EquipmentBarbell         Equipment = "Barbell"
	EquipmentResistanceBands Equipment = "Resistance Bands"
	EquipmentCableMachine    Equipment = "Cable Machine"
)

func (e Equipment) IsValid() bool {
	switch e {
	case EquipmentBodyweight, EquipmentDumbbells, EquipmentBarbell,
		EquipmentResistanceBands, EquipmentCableMachine:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

// Location says where an exercise can be done. LocationBoth matches
// either Home or Gym when filtering.
type Location string

const (
	LocationHome Location = "Home"
	LocationGym  Location = "Gym"
	LocationBoth Location = "Both"
)

func (l Location) IsValid() bool {
	switch l {
	case LocationHome, LocationGym, LocationBoth:
		return true
	}
	return false
}

// Exercise represents a single exercise definition in the catalog.
// Routine entries embed a copy of it, so it is stored with both tag sets.
type Exercise struct {
	ID           int         `bson:"id" json:"id"`
	Name         string      `bson:"name" json:"name"`
	MuscleGroup  MuscleGroup `bson:"muscleGroup" json:"muscleGroup"`
	Equipment    Equipment   `bson:"equipment" json:"equipment"`
	Difficulty   Difficulty  `bson:"difficulty" json:"difficulty"`
	Location     Location    `bson:"location" json:"location"`
	Instructions []string    `bson:"instructions,omitempty" json:"instructions,omitempty"` // Numbered steps, order matters
	Tips         []string    `bson:"tips,omitempty" json:"tips,omitempty"`
	VideoURL     string      `bson:"videoUrl,omitempty" json:"videoUrl,omitempty"` // Optional demo media (URL or storage key)
}

// Validate checks the fields a user-submitted exercise must carry.
func (e Exercise) Validate() error {
	var fields []FieldError
	if e.Name == "" {
		fields = append(fields, FieldError{Field: "name", Err: ErrExerciseNameRequired})
	}
	if !e.MuscleGroup.IsValid() {
		fields = append(fields, FieldError{Field: "muscleGroup", Err: ErrInvalidEnumValue})
	}
	if !e.Equipment.IsValid() {
		fields = append(fields, FieldError{Field: "equipment", Err: ErrInvalidEnumValue})
	}
	if !e.Difficulty.IsValid() {
		fields = append(fields, FieldError{Field: "difficulty", Err: ErrInvalidEnumValue})
	}
	if !e.Location.IsValid() {
		fields = append(fields, FieldError{Field: "location", Err: ErrInvalidEnumValue})
	}
	if len(fields) > 0 {
		return &ValidationError{Errors: fields}
	}
	return nil
}

// Clone returns a copy that shares no slices with e.
func (e Exercise) Clone() Exercise {
	c := e
	if e.Instructions != nil {
		c.Instructions = append([]string(nil), e.Instructions...)
	}
	if e.Tips != nil {
		c.Tips = append([]string(nil), e.Tips...)
	}
	return c
}
