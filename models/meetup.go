package models

// MeetupStatus indicates the lifecycle state of a meetup
type MeetupStatus string

const (
	MeetupStatusUpcoming  MeetupStatus = "upcoming"
	MeetupStatusActive    MeetupStatus = "active"
	MeetupStatusCompleted MeetupStatus = "completed"
)

// Meetup is a community-organized, point-funded event. CurrentStaked only
// ever grows via stake actions; Participants increments once per successful
// stake.
type Meetup struct {
	ID            string       `json:"id"`
	Slug          string       `json:"slug"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Location      string       `json:"location"`
	Date          string       `json:"date"`
	Fandom        string       `json:"fandom"`
	Organizer     string       `json:"organizer"`
	StakingGoal   int          `json:"staking_goal"`
	CurrentStaked int          `json:"current_staked"`
	Participants  int          `json:"participants"`
	Status        MeetupStatus `json:"status"`
}

// Progress returns the funding ratio CurrentStaked/StakingGoal
func (m *Meetup) Progress() float64 {
	if m.StakingGoal <= 0 {
		return 0
	}
	return float64(m.CurrentStaked) / float64(m.StakingGoal)
}
