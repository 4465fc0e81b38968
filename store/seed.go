package store

import (
	"time"

	"minniemissions/models"
)

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)
	return t
}

func datePtr(value string) *time.Time {
	t := date(value)
	return &t
}

// seed loads the launch catalogs: the mission catalog, the initial user
// roster (including the admin account), the fandom reference list and the
// founding meetups.
func (s *Store) seed() {
	s.missions = []*models.Mission{
		{
			ID:          "m1",
			Title:       "Share on Twitter",
			Description: "Share our latest post on Twitter and tag us",
			ImageURL:    "https://images.unsplash.com/photo-1611605698335-8b1569810432?ixlib=rb-1.2.1&auto=format&fit=crop&w=1200&q=80",
			Reward:      50,
			Category:    models.MissionCategorySocial,
			CompletedBy: []string{"u1", "u3"},
			Status:      models.MissionStatusActive,
			CreatedAt:   date("2025-03-15"),
			ExpiresAt:   datePtr("2025-05-15"),
		},
		{
			ID:          "m2",
			Title:       "Attend Virtual Concert",
			Description: "Join our virtual concert and check in with your wallet",
			ImageURL:    "https://images.unsplash.com/photo-1501281668745-f7f57925c3b4?ixlib=rb-1.2.1&auto=format&fit=crop&w=1200&q=80",
			Reward:      100,
			Category:    models.MissionCategoryEvent,
			CompletedBy: []string{"u2"},
			Status:      models.MissionStatusActive,
			CreatedAt:   date("2025-03-20"),
			ExpiresAt:   datePtr("2025-04-01"),
		},
		{
			ID:          "m3",
			Title:       "Create Fan Art",
			Description: "Create and share fan art on Instagram with our hashtag",
			ImageURL:    "https://images.unsplash.com/photo-1579762715118-a6f1d4b934f1?ixlib=rb-1.2.1&auto=format&fit=crop&w=1200&q=80",
			Reward:      75,
			Category:    models.MissionCategoryContent,
			CompletedBy: []string{"u1"},
			Status:      models.MissionStatusActive,
			CreatedAt:   date("2025-03-10"),
		},
		{
			ID:          "m4",
			Title:       "Distribute Posters",
			Description: "Print posters and distribute them in your neighborhood",
			ImageURL:    "https://images.unsplash.com/photo-1588497859490-85d1c17db96d?ixlib=rb-1.2.1&auto=format&fit=crop&w=1200&q=80",
			Reward:      150,
			Category:    models.MissionCategoryReferral,
			CompletedBy: []string{},
			Status:      models.MissionStatusActive,
			CreatedAt:   date("2025-03-18"),
			ExpiresAt:   datePtr("2025-06-18"),
		},
		{
			ID:          "m5",
			Title:       "Join Discord Community",
			Description: "Join our Discord server and introduce yourself",
			ImageURL:    "https://images.unsplash.com/photo-1614680376408-81e91ffe3db7?ixlib=rb-1.2.1&auto=format&fit=crop&w=1200&q=80",
			Reward:      25,
			Category:    models.MissionCategorySocial,
			CompletedBy: []string{"u1", "u2", "u3"},
			Status:      models.MissionStatusActive,
			CreatedAt:   date("2025-02-01"),
		},
	}

	s.users = []*models.User{
		{
			ID:                "u1",
			Address:           "5GrwvaEF5zXb26Fz9rcQpDWS57CtERHpNehXCPcNoHGKutQY",
			Name:              "Alice",
			VibePoints:        250,
			CompletedMissions: []string{"m1", "m3", "m5"},
			ReferralCount:     5,
			ReferralCode:      "ALICE2025",
			JoinedAt:          date("2025-01-15"),
		},
		{
			ID:                "u2",
			Address:           "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty",
			Name:              "Bob",
			VibePoints:        125,
			CompletedMissions: []string{"m2", "m5"},
			ReferralCount:     2,
			ReferralCode:      "BOB2025",
			JoinedAt:          date("2025-02-10"),
		},
		{
			ID:                "u3",
			Address:           "5FLSigC9HGRKVhB9FiEo4Y3koPsNmBmLJbpXg2mp1hXcS59Y",
			Name:              "Charlie",
			VibePoints:        75,
			CompletedMissions: []string{"m1", "m5"},
			ReferralCount:     1,
			ReferralCode:      "CHARLIE2025",
			JoinedAt:          date("2025-03-01"),
		},
		{
			ID:                "u4",
			Address:           "5DAAnrj7VHTznn2AWBemMuyBwZWs6FNFjdyVXUeYum3PTXFy",
			Name:              "Admin",
			VibePoints:        0,
			CompletedMissions: []string{},
			ReferralCount:     0,
			ReferralCode:      "ADMIN2025",
			JoinedAt:          date("2025-01-01"),
			IsAdmin:           true,
		},
	}

	s.fandoms = []models.Fandom{
		{Name: "BeyHive", Fanbase: "BeyHive", Artist: "Beyoncé"},
		{Name: "Swifties", Fanbase: "Swifties", Artist: "Taylor Swift"},
		{Name: "ARMY", Fanbase: "ARMY", Artist: "BTS"},
		{Name: "Barbz", Fanbase: "Barbz", Artist: "Nicki Minaj"},
		{Name: "Little Monsters", Fanbase: "Little Monsters", Artist: "Lady Gaga"},
		{Name: "Navy", Fanbase: "Navy", Artist: "Rihanna"},
		{Name: "Arianators", Fanbase: "Arianators", Artist: "Ariana Grande"},
		{Name: "Beliebers", Fanbase: "Beliebers", Artist: "Justin Bieber"},
		{Name: "Directioners", Fanbase: "Directioners", Artist: "One Direction"},
		{Name: "KatyCats", Fanbase: "KatyCats", Artist: "Katy Perry"},
	}

	s.meetups = []*models.Meetup{
		{
			ID:            "1",
			Slug:          "beyhive-new-album-listening-party",
			Title:         "BeyHive New Album Listening Party",
			Description:   "Join fellow BeyHive members for an exclusive listening party of Beyoncé's latest album. Food and drinks provided!",
			Location:      "Studio 55, Los Angeles",
			Date:          "2025-05-15",
			Fandom:        "BeyHive",
			Organizer:     "bee_queen_324",
			StakingGoal:   500,
			CurrentStaked: 350,
			Participants:  24,
			Status:        models.MeetupStatusUpcoming,
		},
		{
			ID:            "2",
			Slug:          "30bg-lagos-meetup",
			Title:         "30BG Lagos Meetup",
			Description:   "Meet other 30BG fans in Lagos for a day of music, games, and community. Special Davido merch giveaways!",
			Location:      "Landmark Beach, Lagos",
			Date:          "2025-05-10",
			Fandom:        "30BG",
			Organizer:     "davido_stan",
			StakingGoal:   300,
			CurrentStaked: 300,
			Participants:  42,
			Status:        models.MeetupStatusActive,
		},
		{
			ID:            "3",
			Slug:          "swifties-friendship-bracelet-exchange",
			Title:         "Swifties Friendship Bracelet Exchange",
			Description:   "Exchange friendship bracelets with fellow Swifties and discuss theories about Taylor's next album.",
			Location:      "Central Park, New York",
			Date:          "2025-06-20",
			Fandom:        "Swifties",
			Organizer:     "ts_enchanted",
			StakingGoal:   250,
			CurrentStaked: 180,
			Participants:  35,
			Status:        models.MeetupStatusUpcoming,
		},
	}
}
