// Copyright © 2026 Groups.io, Inc.
// SPDX-License-Identifier: Apache-2.0

package dirops

import (
	"context"
	"strconv"

	"github.com/codealong/server/internal/activity"
	"github.com/codealong/server/internal/metrics"
	"github.com/codealong/server/internal/session"
)

// Route applies an inbound UserActivity against sess on behalf of userID
// and returns the audience it should be dispatched to together with the
// SessionActivity payload, per the fixed routing table in the design.
func Route(ctx context.Context, sess *session.Session, userID string, ua *activity.UserActivity, limits Limits) (session.Audience, activity.SessionActivity) {
	audience, out := route(ctx, sess, userID, ua, limits)
	observe(out)
	return audience, out
}

func observe(out activity.SessionActivity) {
	if out.Server == nil {
		return
	}
	switch out.Server.Kind {
	case activity.ServerActivityLineLocked:
		metrics.LinesLockedTotal.Inc()
	case activity.ServerActivityLineAdded:
		metrics.LinesCreatedTotal.Inc()
	case activity.ServerActivityDirectoryErr:
		metrics.DirectoryErrorsTotal.WithLabelValues(strconv.Itoa(int(out.Server.DirectoryErr.Kind))).Inc()
	}
}

func route(ctx context.Context, sess *session.Session, userID string, ua *activity.UserActivity, limits Limits) (session.Audience, activity.SessionActivity) {
	switch ua.Kind {
	case activity.UserActivityRequestSync:
		dto := HandleRequestSync(sess.Root)
		return session.AudienceSameUser, activity.FromServer(activity.ServerActivity{
			Kind:           activity.ServerActivityCurrentProject,
			CurrentProject: dto,
		})

	case activity.UserActivityDirUpdated:
		if err := HandleDirUpdated(ctx, sess.Root, ua.DirUpdated); err != nil {
			return session.AudienceSameUser, errActivity(errName(ua.DirUpdated), err)
		}
		return session.AudienceOtherUsers, activity.FromServer(activity.ServerActivity{
			Kind:            activity.ServerActivityDirectoryUpdate,
			DirectoryUpdate: ua.DirUpdated,
		})

	case activity.UserActivityLockLine:
		ref, err := HandleLockLine(ctx, sess.Root, userID, ua.LockLine)
		if err != nil {
			if lockRef, ok := LineLockRef(err); ok {
				return session.AudienceSameUser, activity.FromServer(activity.ServerActivity{
					Kind:         activity.ServerActivityDirectoryErr,
					DirectoryErr: &activity.DirError{Kind: activity.DirErrLineLocked, LineLock: &lockRef},
				})
			}
			return session.AudienceSameUser, errActivity("", err)
		}
		return session.AudienceAllUsers, activity.FromServer(activity.ServerActivity{
			Kind:       activity.ServerActivityLineLocked,
			LineLocked: &ref,
		})

	case activity.UserActivityUnlockLine:
		ref, err := HandleUnlockLine(ctx, sess.Root, userID, ua.UnlockLine)
		if err != nil {
			return session.AudienceSameUser, errActivity("", err)
		}
		return session.AudienceAllUsers, activity.FromServer(activity.ServerActivity{
			Kind:         activity.ServerActivityLineUnlocked,
			LineUnlocked: &ref,
		})

	case activity.UserActivityCreateLine:
		ref, err := HandleCreateLine(ctx, sess.Root, userID, ua.CreateLine, limits)
		if err != nil {
			return session.AudienceSameUser, errActivity("", err)
		}
		return session.AudienceAllUsers, activity.FromServer(activity.ServerActivity{
			Kind:      activity.ServerActivityLineAdded,
			LineAdded: &ref,
		})

	case activity.UserActivityFileChanged:
		if err := HandleFileChanged(ctx, sess.Root, userID, ua.FileChanged, limits); err != nil {
			return session.AudienceSameUser, errActivity("", err)
		}
		return session.AudienceOtherUsers, activity.FromUser(*ua)

	default:
		return session.AudienceNone, activity.SessionActivity{}
	}
}

func errActivity(name string, err error) activity.SessionActivity {
	de := activity.FromDomainError(name, err)
	return activity.FromServer(activity.ServerActivity{
		Kind:         activity.ServerActivityDirectoryErr,
		DirectoryErr: &de,
	})
}

// errName recovers the path-component name an operation failed on, for
// NotFound/Locked error construction: the final segment of whichever path
// the operation targeted.
func errName(op *activity.DirectoryUpdated) string {
	if op == nil {
		return ""
	}
	path := op.Path
	if op.Rename != nil {
		path = op.Rename.Path
	}
	if len(path) == 0 {
		return ""
	}
	return path[len(path)-1]
}
