package model

// ApplicationStatus is the tracking stage of a job application. Any value
// transition is permitted; there is no ordering between stages.
type ApplicationStatus string

const (
	StatusApplied            ApplicationStatus = "applied"
	StatusReviewing          ApplicationStatus = "reviewing"
	StatusPhoneScreen        ApplicationStatus = "phone_screen"
	StatusTechnicalInterview ApplicationStatus = "technical_interview"
	StatusOnsiteInterview    ApplicationStatus = "onsite_interview"
	StatusFinalRound         ApplicationStatus = "final_round"
	StatusOffer              ApplicationStatus = "offer"
	StatusRejected           ApplicationStatus = "rejected"
	StatusWithdrawn          ApplicationStatus = "withdrawn"
	StatusAccepted           ApplicationStatus = "accepted"
)

// AllStatuses lists every status in declaration order, used by the
// statistics endpoint to emit one count per status.
var AllStatuses = []ApplicationStatus{
	StatusApplied,
	StatusReviewing,
	StatusPhoneScreen,
	StatusTechnicalInterview,
	StatusOnsiteInterview,
	StatusFinalRound,
	StatusOffer,
	StatusRejected,
	StatusWithdrawn,
	StatusAccepted,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range AllStatuses {
		if s == v {
			return true
		}
	}
	return false
}

type JobType string

const (
	JobTypeFullTime   JobType = "full_time"
	JobTypePartTime   JobType = "part_time"
	JobTypeContract   JobType = "contract"
	JobTypeInternship JobType = "internship"
	JobTypeFreelance  JobType = "freelance"
)

func (t JobType) Valid() bool {
	switch t {
	case JobTypeFullTime, JobTypePartTime, JobTypeContract, JobTypeInternship, JobTypeFreelance:
		return true
	}
	return false
}

type RemoteType string

const (
	RemoteTypeOnSite RemoteType = "on_site"
	RemoteTypeRemote RemoteType = "remote"
	RemoteTypeHybrid RemoteType = "hybrid"
)

func (t RemoteType) Valid() bool {
	switch t {
	case RemoteTypeOnSite, RemoteTypeRemote, RemoteTypeHybrid:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}
