package verification

import "github.com/osse101/EcoHunt_Go/internal/domain"

// activityPattern lists the cues that indicate an activity in a photo
type activityPattern struct {
	Keywords     []string
	VisualCues   []string
	ContextClues []string
}

var activityPatterns = map[domain.ActivityType]activityPattern{
	domain.ActivityTreePlanting: {
		Keywords:     []string{"tree", "sapling", "planting", "soil", "roots", "gardening"},
		VisualCues:   []string{"small_tree", "digging_tools", "hands_in_soil"},
		ContextClues: []string{"outdoor", "natural_environment", "vegetation"},
	},
	domain.ActivityWasteCleanup: {
		Keywords:     []string{"trash", "litter", "cleaning", "garbage", "waste", "pickup"},
		VisualCues:   []string{"garbage_bags", "cleaning_tools", "litter"},
		ContextClues: []string{"public_spaces", "cleaning_activity", "environmental_restoration"},
	},
	domain.ActivityRecycling: {
		Keywords:     []string{"recycling", "bottles", "cans", "paper", "sorting"},
		VisualCues:   []string{"recycling_bins", "sorted_materials", "recyclable_items"},
		ContextClues: []string{"waste_management", "environmental_responsibility"},
	},
	domain.ActivityWaterConservation: {
		Keywords:     []string{"water", "conservation", "saving", "efficient", "system"},
		VisualCues:   []string{"water_systems", "conservation_equipment", "efficient_appliances"},
		ContextClues: []string{"water_management", "efficiency_improvements"},
	},
	domain.ActivityWildlifeConservation: {
		Keywords:     []string{"wildlife", "animals", "habitat", "conservation", "protection"},
		VisualCues:   []string{"animals", "natural_habitat", "conservation_equipment"},
		ContextClues: []string{"nature_preservation", "wildlife_protection"},
	},
	domain.ActivitySustainableTransport: {
		Keywords:     []string{"bicycle", "bike", "bus", "train", "walking", "scooter", "transit"},
		VisualCues:   []string{"bicycle", "public_transport", "bike_lane"},
		ContextClues: []string{"commute", "street", "urban_mobility"},
	},
	domain.ActivityComposting: {
		Keywords:     []string{"compost", "organic", "food_scraps", "soil", "worms"},
		VisualCues:   []string{"compost_bin", "organic_waste", "garden_soil"},
		ContextClues: []string{"garden", "backyard", "waste_management"},
	},
	domain.ActivityCleanEnergyUsage: {
		Keywords:     []string{"solar", "wind", "renewable", "energy", "panel", "turbine"},
		VisualCues:   []string{"solar_panels", "wind_turbine", "ev_charger"},
		ContextClues: []string{"rooftop", "energy_efficiency", "renewable_energy"},
	},
}

// Environmental indicator vocabularies for the relevance check
var (
	naturalElements = []string{
		"tree", "forest", "nature", "plant", "garden", "soil", "water", "river",
		"grass", "flower", "animal", "wildlife", "bird", "habitat", "vegetation",
	}
	impactIndicators = []string{
		"recycling", "cleanup", "waste", "trash", "litter", "pollution", "carbon",
		"emission", "compost", "bottles",
	}
	sustainabilityMarkers = []string{
		"renewable", "solar", "wind", "sustainable", "green", "eco", "conservation",
		"biodiversity", "ecosystem", "bicycle", "transit", "climate", "environment",
	}
)

// Fraud vocabularies matched against labels, description and software
var (
	stockPhotoMarkers = []string{
		"stock photo", "watermark", "getty", "shutterstock", "istockphoto",
		"adobe stock", "dreamstime",
	}
	aiGeneratorMarkers = []string{
		"midjourney", "dall e", "stable diffusion", "ai generated", "firefly",
	}
	editingSoftware = []string{
		"photoshop", "gimp", "lightroom", "snapseed", "facetune", "picsart",
	}
)
