package domain

import "time"

// Client is the identity record of a bank customer. The Core creates it at
// onboarding and never mutates it afterwards.
type Client struct {
	ClientID  int64     `json:"clientID"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Email     string    `json:"email"` // stored lowercased; unique
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	CreatedBy int64     `json:"createdBy"`
}

// OnboardingResult is returned only when both the client and its first account were committed.
type OnboardingResult struct {
	Client  Client  `json:"client"`
	Account Account `json:"account"`
}
