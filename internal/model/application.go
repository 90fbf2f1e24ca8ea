package model

import "time"

// Application is one tracked job application. The owner reference is
// optional: a record may exist without a user.
type Application struct {
	ID     uint  `gorm:"primaryKey" json:"id"`
	UserID *uint `gorm:"index" json:"user_id,omitempty"`

	CompanyName    string `gorm:"size:200;not null;index" json:"company_name"`
	JobTitle       string `gorm:"size:200;not null;index" json:"job_title"`
	JobURL         string `gorm:"type:text" json:"job_url,omitempty"`
	JobDescription string `gorm:"type:text" json:"job_description,omitempty"`
	Location       string `gorm:"size:200" json:"location,omitempty"`

	SalaryMin *int   `json:"salary_min,omitempty"`
	SalaryMax *int   `json:"salary_max,omitempty"`
	Currency  string `gorm:"size:3" json:"currency"`

	JobType    JobType    `gorm:"size:32" json:"job_type,omitempty"`
	RemoteType RemoteType `gorm:"size:32" json:"remote_type,omitempty"`

	ApplicationDate *Date             `gorm:"type:date" json:"application_date,omitempty"`
	Deadline        *Date             `gorm:"type:date" json:"deadline,omitempty"`
	Status          ApplicationStatus `gorm:"size:32;index" json:"status"`
	Priority        Priority          `gorm:"size:32;index" json:"priority"`

	Notes         string `gorm:"type:text" json:"notes,omitempty"`
	ReferralName  string `gorm:"size:100" json:"referral_name,omitempty"`
	ContactEmail  string `gorm:"size:255" json:"contact_email,omitempty"`
	ContactPerson string `gorm:"size:100" json:"contact_person,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DaysSinceApplied returns whole days from the application date to today,
// or nil when no application date is set. Derived at read time, not stored.
func (a *Application) DaysSinceApplied() *int {
	if a.ApplicationDate == nil {
		return nil
	}
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(today.Sub(a.ApplicationDate.Time).Hours() / 24)
	return &days
}
