// Package schoology provides a client for the Schoology parent portal.
//
// The portal has no API for parent calendar access; this package drives the
// same endpoints the web UI uses. Authentication is a form POST whose session
// cookies are held in the client's jar for the rest of the run. Calendar data
// is scoped to the session's "active child", so the client exposes the child
// switch and the calendar fetch as one atomic operation and must be used
// sequentially from a single goroutine.
//
// Example usage:
//
//	client, err := schoology.New(cfg.PortalURL, cfg.PortalUser, cfg.PortalPass, metrics)
//	if err != nil {
//	    return err
//	}
//	if err := client.Login(ctx); err != nil {
//	    return err
//	}
//	raw, err := client.EventsForChild(ctx, child, timerange.NextWeek(time.Now()))
//
// Raw events are normalized separately with Normalize, which strips HTML
// from the body and decodes entities.
package schoology
