// Package screens holds the dependency bundle shared by the wizard
// screens. Each step lives in its own subpackage and receives *Deps at
// construction time.
package screens

import (
	"context"
	"time"

	"github.com/prepnova/prepnova/internal/adjust"
	"github.com/prepnova/prepnova/internal/calendar"
	"github.com/prepnova/prepnova/internal/googleauth"
	"github.com/prepnova/prepnova/internal/planner"
	"github.com/prepnova/prepnova/internal/planstore"
	"github.com/prepnova/prepnova/internal/screen"
)

// Deps carries the services every wizard screen may need.
type Deps struct {
	Planner  *planner.Service
	Adjuster *adjust.Service
	Store    *planstore.Store

	// Auth is nil when Google credentials are not configured. AuthHint
	// then explains how to set them up.
	Auth     *googleauth.State
	AuthHint string

	// Calendar builds a reconciler on the signed-in account. It fails
	// with googleauth.ErrSignedOut when nobody is signed in.
	Calendar func(ctx context.Context) (*calendar.Reconciler, error)

	// OpenURL launches the system browser for the OAuth consent page.
	OpenURL func(url string)

	Now func() time.Time

	// NewUpload rebuilds the first wizard step with an optional error
	// banner. Later steps route back through it; injecting the factory
	// keeps the screen packages acyclic.
	NewUpload func(errMsg string) screen.Screen
}

// Account returns the signed-in Google account email, or "".
func (d *Deps) Account() string {
	if d.Auth == nil {
		return ""
	}
	p := d.Auth.Profile()
	if p == nil {
		return ""
	}
	return p.Email
}
