package models

import "strings"

// KnownUser enumerates the accounts that have a published avatar.
type KnownUser int

const (
	UnknownUser KnownUser = iota
	CathieWood
	JimCramer
	BillAckman
	JasonCalcanis
)

var knownUserNames = map[string]KnownUser{
	"cathie wood":    CathieWood,
	"jim cramer":     JimCramer,
	"bill ackman":    BillAckman,
	"jason calcanis": JasonCalcanis,
}

// LookupKnownUser matches a display name case-insensitively.
func LookupKnownUser(username string) KnownUser {
	if u, ok := knownUserNames[strings.ToLower(strings.TrimSpace(username))]; ok {
		return u
	}
	return UnknownUser
}

// AvatarURL returns the avatar for the user and false for UnknownUser.
func (u KnownUser) AvatarURL() (string, bool) {
	switch u {
	case CathieWood:
		return "https://pbs.twimg.com/profile_images/1782845672829423617/xuyhQIY5_400x400.jpg", true
	case JimCramer:
		return "https://pbs.twimg.com/profile_images/1461426655046606860/PzlSk4fZ_400x400.jpg", true
	case BillAckman:
		return "https://pbs.twimg.com/profile_images/1619837521059348481/9UeNLFmD_400x400.jpg", true
	case JasonCalcanis:
		return "https://pbs.twimg.com/profile_images/1828870492633104384/o37xorx4_400x400.jpg", true
	default:
		return "", false
	}
}
