package catalog

import "fitbuilder/server/internal/domain"

const mediaBaseURL = "https://fitnessprogramer.com/wp-content/uploads/2021/02/"

// SeedExercises returns the built-in exercise library. Each call returns a
// fresh copy.
func SeedExercises() []domain.Exercise {
	return []domain.Exercise{
		{
			ID:          1,
			Name:        "Push-ups",
			MuscleGroup: domain.MuscleGroupChest,
			Equipment:   domain.EquipmentBodyweight,
			Difficulty:  domain.DifficultyBeginner,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Start in a plank position with hands shoulder-width apart",
				"Lower your body until your chest nearly touches the floor",
				"Push back up to starting position",
				"Repeat for desired reps",
			},
			Tips: []string{
				"Keep your core engaged throughout",
				"Maintain a straight line from head to heels",
				"Don't let your hips sag",
			},
			VideoURL: mediaBaseURL + "Push-Up.gif",
		},
		{
			ID:          2,
			Name:        "Barbell Squat",
			MuscleGroup: domain.MuscleGroupLegs,
			Equipment:   domain.EquipmentBarbell,
			Difficulty:  domain.DifficultyIntermediate,
			Location:    domain.LocationGym,
			Instructions: []string{
				"Position barbell on your upper back",
				"Stand with feet shoulder-width apart",
				"Lower down by bending knees and hips",
				"Push through heels to return to start",
			},
			Tips: []string{
				"Keep your chest up and back straight",
				"Knees should track over toes",
				"Go as low as your mobility allows",
			},
			VideoURL: mediaBaseURL + "BARBELL-SQUAT.gif",
		},
		{
			ID:          3,
			Name:        "Dumbbell Shoulder Press",
			MuscleGroup: domain.MuscleGroupShoulders,
			Equipment:   domain.EquipmentDumbbells,
			Difficulty:  domain.DifficultyIntermediate,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Sit or stand with dumbbells at shoulder height",
				"Press weights overhead until arms are fully extended",
				"Lower back to shoulder height with control",
				"Repeat for desired reps",
			},
			Tips: []string{
				"Engage your core for stability",
				"Don't arch your back excessively",
				"Control the weight on the way down",
			},
			VideoURL: mediaBaseURL + "Dumbbell-Shoulder-Press.gif",
		},
		{
			ID:          4,
			Name:        "Pull-ups",
			MuscleGroup: domain.MuscleGroupBack,
			Equipment:   domain.EquipmentBodyweight,
			Difficulty:  domain.DifficultyAdvanced,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Hang from a pull-up bar with hands slightly wider than shoulder-width",
				"Pull yourself up until chin is over the bar",
				"Lower yourself back down with control",
				"Repeat for desired reps",
			},
			Tips: []string{
				"Engage your lats and squeeze shoulder blades together",
				"Avoid swinging or using momentum",
				"Use resistance bands for assistance if needed",
			},
			VideoURL: mediaBaseURL + "Pull-up.gif",
		},
		{
			ID:          5,
			Name:        "Plank",
			MuscleGroup: domain.MuscleGroupCore,
			Equipment:   domain.EquipmentBodyweight,
			Difficulty:  domain.DifficultyBeginner,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Start in a forearm plank position",
				"Keep body in a straight line from head to heels",
				"Hold the position for desired time",
				"Breathe steadily throughout",
			},
			Tips: []string{
				"Don't let hips sag or pike up",
				"Keep neck neutral by looking at the floor",
				"Engage your core and glutes",
			},
			VideoURL: mediaBaseURL + "Plank.gif",
		},
		{
			ID:          6,
			Name:        "Deadlift",
			MuscleGroup: domain.MuscleGroupFullBody,
			Equipment:   domain.EquipmentBarbell,
			Difficulty:  domain.DifficultyAdvanced,
			Location:    domain.LocationGym,
			Instructions: []string{
				"Stand with feet hip-width apart, barbell over mid-foot",
				"Bend at hips and knees to grip the bar",
				"Keep back straight, chest up, and lift the bar by extending hips and knees",
				"Lower the bar back to the ground with control",
			},
			Tips: []string{
				"Keep the bar close to your body throughout",
				"Drive through your heels",
				"Maintain a neutral spine at all times",
			},
			VideoURL: mediaBaseURL + "Barbell-Deadlift.gif",
		},
		{
			ID:          7,
			Name:        "Bicep Curls",
			MuscleGroup: domain.MuscleGroupArms,
			Equipment:   domain.EquipmentDumbbells,
			Difficulty:  domain.DifficultyBeginner,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Stand with dumbbells at your sides, palms facing forward",
				"Curl the weights up while keeping elbows stationary",
				"Squeeze at the top",
				"Lower back down with control",
			},
			Tips: []string{
				"Don't swing the weights",
				"Keep your elbows close to your body",
				"Control the negative portion",
			},
			VideoURL: mediaBaseURL + "Dumbbell-Bicep-Curl.gif",
		},
		{
			ID:          8,
			Name:        "Lunges",
			MuscleGroup: domain.MuscleGroupLegs,
			Equipment:   domain.EquipmentBodyweight,
			Difficulty:  domain.DifficultyBeginner,
			Location:    domain.LocationBoth,
			Instructions: []string{
				"Step forward with one leg",
				"Lower your hips until both knees are bent at 90 degrees",
				"Push back to starting position",
				"Alternate legs",
			},
			Tips: []string{
				"Keep your torso upright",
				"Don't let your front knee pass your toes",
				"Engage your core for balance",
			},
			VideoURL: mediaBaseURL + "Dumbbell-Lunges.gif",
		},
	}
}
