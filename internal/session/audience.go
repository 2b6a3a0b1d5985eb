// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package session

// Audience selects which connected users receive a given outbound message,
// relative to the user whose inbound activity produced it.
type Audience int

const (
	// AudienceNone delivers to nobody (e.g. a silently-dropped malformed message).
	AudienceNone Audience = iota
	// AudienceSameUser delivers only back to the originating user.
	AudienceSameUser
	// AudienceOtherUsers delivers to every connected user except the originator.
	AudienceOtherUsers
	// AudienceAllUsers delivers to every connected user, including the originator.
	AudienceAllUsers
)

func (a Audience) String() string {
	switch a {
	case AudienceNone:
		return "None"
	case AudienceSameUser:
		return "SameUser"
	case AudienceOtherUsers:
		return "OtherUsers"
	case AudienceAllUsers:
		return "AllUsers"
	default:
		return "Unknown"
	}
}
