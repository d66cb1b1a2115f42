package catalog

import "github.com/brandforge/brandforge/internal/model"

// bundledCategories returns the static fallback catalog shipped with the
// binary. Codes follow the NAICS industry classification.
func bundledCategories() []model.CategoryRecord {
	return []model.CategoryRecord{
		{
			Code:        "238220",
			DisplayName: "Plumbing",
			Keywords:    []string{"plumber", "pipes", "drains", "water heater", "leak repair"},
			Group:       "Home Services",
			Popularity:  95,
		},
		{
			Code:        "238210",
			DisplayName: "Electrical Contractors",
			Keywords:    []string{"electrician", "wiring", "panel upgrade", "lighting"},
			Group:       "Home Services",
			Popularity:  90,
		},
		{
			Code:        "238160",
			DisplayName: "Roofing",
			Keywords:    []string{"roofer", "shingles", "roof repair", "gutters"},
			Group:       "Home Services",
			Popularity:  82,
		},
		{
			Code:        "561730",
			DisplayName: "Landscaping Services",
			Keywords:    []string{"lawn care", "mowing", "garden design", "tree trimming"},
			Group:       "Home Services",
			Popularity:  80,
		},
		{
			Code:        "561720",
			DisplayName: "Cleaning Services",
			Keywords:    []string{"house cleaning", "janitorial", "maid service", "deep clean"},
			Group:       "Home Services",
			Popularity:  78,
		},
		{
			Code:        "238330",
			DisplayName: "Flooring Contractors",
			Keywords:    []string{"hardwood", "tile", "carpet installation", "refinishing"},
			Group:       "Home Services",
			Popularity:  60,
		},
		{
			Code:        "811111",
			DisplayName: "Auto Repair",
			Keywords:    []string{"mechanic", "oil change", "brakes", "engine diagnostics"},
			Group:       "Automotive",
			Popularity:  85,
		},
		{
			Code:        "811192",
			DisplayName: "Car Wash & Detailing",
			Keywords:    []string{"car wash", "detailing", "waxing", "interior cleaning"},
			Group:       "Automotive",
			Popularity:  55,
		},
		{
			Code:        "722511",
			DisplayName: "Restaurants",
			Keywords:    []string{"dining", "menu", "chef", "reservations", "takeout"},
			Group:       "Food & Beverage",
			Popularity:  92,
		},
		{
			Code:        "722515",
			DisplayName: "Coffee Shops",
			Keywords:    []string{"coffee", "espresso", "cafe", "pastries", "baristas"},
			Group:       "Food & Beverage",
			Popularity:  75,
		},
		{
			Code:        "722320",
			DisplayName: "Catering",
			Keywords:    []string{"caterer", "events", "weddings", "corporate lunches"},
			Group:       "Food & Beverage",
			Popularity:  58,
		},
		{
			Code:        "621210",
			DisplayName: "Dental Practices",
			Keywords:    []string{"dentist", "teeth cleaning", "orthodontics", "implants"},
			Group:       "Health & Wellness",
			Popularity:  88,
		},
		{
			Code:        "621111",
			DisplayName: "Medical Practices",
			Keywords:    []string{"doctor", "physician", "clinic", "family medicine"},
			Group:       "Health & Wellness",
			Popularity:  86,
		},
		{
			Code:        "713940",
			DisplayName: "Gyms & Fitness Studios",
			Keywords:    []string{"gym", "personal training", "yoga", "crossfit", "memberships"},
			Group:       "Health & Wellness",
			Popularity:  84,
		},
		{
			Code:        "621310",
			DisplayName: "Chiropractors",
			Keywords:    []string{"chiropractic", "spine", "adjustment", "back pain"},
			Group:       "Health & Wellness",
			Popularity:  62,
		},
		{
			Code:        "812112",
			DisplayName: "Hair Salons",
			Keywords:    []string{"haircut", "stylist", "color", "barber", "blowout"},
			Group:       "Personal Care",
			Popularity:  81,
		},
		{
			Code:        "812910",
			DisplayName: "Pet Care Services",
			Keywords:    []string{"grooming", "dog walking", "boarding", "pet sitting"},
			Group:       "Personal Care",
			Popularity:  65,
		},
		{
			Code:        "541110",
			DisplayName: "Law Firms",
			Keywords:    []string{"attorney", "lawyer", "legal advice", "litigation"},
			Group:       "Professional Services",
			Popularity:  83,
		},
		{
			Code:        "541211",
			DisplayName: "Accounting Firms",
			Keywords:    []string{"accountant", "bookkeeping", "tax preparation", "payroll"},
			Group:       "Professional Services",
			Popularity:  79,
		},
		{
			Code:        "541613",
			DisplayName: "Marketing Agencies",
			Keywords:    []string{"advertising", "branding", "social media", "campaigns"},
			Group:       "Professional Services",
			Popularity:  70,
		},
		{
			Code:        "531210",
			DisplayName: "Real Estate Agencies",
			Keywords:    []string{"realtor", "listings", "home buying", "property"},
			Group:       "Real Estate & Finance",
			Popularity:  87,
		},
		{
			Code:        "524210",
			DisplayName: "Insurance Agencies",
			Keywords:    []string{"insurance", "coverage", "policies", "claims"},
			Group:       "Real Estate & Finance",
			Popularity:  72,
		},
		{
			Code:        "611691",
			DisplayName: "Tutoring Services",
			Keywords:    []string{"tutor", "test prep", "homework help", "enrichment"},
			Group:       "Education",
			Popularity:  56,
		},
		{
			Code:        "541511",
			DisplayName: "Software Development",
			Keywords:    []string{"software", "apps", "web development", "programming"},
			Group:       "Creative & Tech",
			Popularity:  74,
		},
	}
}
