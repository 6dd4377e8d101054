package models

import "time"

// Lead is a contact record used as placeholder-substitution context for the
// script parser. Leads are read-only inputs to the training walkthrough.
type Lead struct {
	ID             string              `json:"id"`
	FirstName      string              `json:"first_name,omitempty"`
	FullName       string              `json:"full_name,omitempty"`
	BusinessName   string              `json:"business_name,omitempty"`
	LeadMagnetName string              `json:"lead_magnet_name,omitempty"`
	Email          string              `json:"email,omitempty"`
	Phone          string              `json:"phone,omitempty"`
	Status         string              `json:"status,omitempty"`
	History        []ConversationEntry `json:"history,omitempty"`
	Notes          string              `json:"notes,omitempty"`
	CreatedAt      time.Time           `json:"created_at"`
	UpdatedAt      time.Time           `json:"updated_at"`
}

// ConversationEntry is one logged touchpoint with a lead.
type ConversationEntry struct {
	Date       time.Time `json:"date"`
	Channel    string    `json:"channel"`
	Summary    string    `json:"summary"`
	Transcript string    `json:"transcript,omitempty"`
}

// Profile is the operator record; only the names feed placeholder context.
type Profile struct {
	ID        string    `json:"id"`
	FirstName string    `json:"first_name,omitempty"`
	FullName  string    `json:"full_name,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
