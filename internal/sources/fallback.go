package sources

import "github.com/pribylovaa/go-volunteer-aggregator/internal/models"

// Фиксированные fallback-записи: по одной на источник.
// Пары (Title, Organization) попарно различны, чтобы полный отказ
// всех источников давал стабильный набор из трёх записей после дедупликации.

func volunteerMatchFallback() models.Opportunity {
	return models.Opportunity{
		ID:           "volunteermatch-fallback",
		Title:        "Community Food Bank Assistant",
		Organization: "Regional Food Bank",
		Category:     "food",
		Description:  "Sort and pack donated food for distribution to local families.",
		Date:         "Ongoing",
		Location:     "Arlington, VA",
		Contact:      "volunteer@regionalfoodbank.example.org",
	}
}

func idealistFallback() models.Opportunity {
	return models.Opportunity{
		ID:           "idealist-fallback",
		Title:        "After-School Tutor",
		Organization: "Neighborhood Learning Center",
		Category:     "education",
		Description:  "Help elementary students with reading and homework twice a week.",
		Date:         "Ongoing",
		Time:         "15:30-17:30",
		Location:     "Arlington, VA",
		Skills:       "patience, basic math",
		Contact:      "tutors@nlcenter.example.org",
	}
}

func allForGoodFallback() models.Opportunity {
	return models.Opportunity{
		ID:           "allforgood-fallback",
		Title:        "Park Cleanup Crew",
		Organization: "Friends of the Parks",
		Category:     "environment",
		Description:  "Join a weekend crew removing litter and invasive plants from county parks.",
		Date:         "Saturdays",
		Location:     "Arlington, VA",
		Contact:      "cleanup@friendsoftheparks.example.org",
	}
}

// FallbackSet — фиксированный агрегатный набор: возвращается, когда
// поиск не дал ни одной живой записи или упала сама оркестрация.
func FallbackSet() []models.Opportunity {
	return []models.Opportunity{
		volunteerMatchFallback(),
		idealistFallback(),
		allForGoodFallback(),
	}
}
