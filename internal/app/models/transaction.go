package models

// Transaction is a billing payment made by an organization for a subscription
type Transaction struct {
	Base
	Amount         int           `json:"amount"`
	SubscriptionID string        `json:"subscriptionId" binding:"required"`
	Subscription   *Subscription `json:"subscription,omitempty"`
	OrganizationID string        `json:"organizationId" binding:"required"`
	Organization   *Organization `json:"organization,omitempty"`
}
