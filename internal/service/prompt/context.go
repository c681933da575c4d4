package prompt

import (
	"fmt"
	"net/http"
	"time"
)

// RequestContext carries the read-only geolocation and timezone signals the
// hosting environment attaches to each request.
type RequestContext struct {
	Country  string
	Region   string
	City     string
	Timezone string
}

// ContextFromRequest reads the hosting environment's geo/timezone headers.
func ContextFromRequest(r *http.Request) RequestContext {
	return RequestContext{
		Country:  r.Header.Get("X-Vercel-IP-Country"),
		Region:   r.Header.Get("X-Vercel-IP-Country-Region"),
		City:     r.Header.Get("X-Vercel-IP-City"),
		Timezone: r.Header.Get("X-Vercel-IP-Timezone"),
	}
}

// Location renders "City, Region, Country". Partial data must not leak: if
// any one signal is missing the result is the literal "unknown".
func (rc RequestContext) Location() string {
	if rc.Country == "" || rc.Region == "" || rc.City == "" {
		return "unknown"
	}
	return fmt.Sprintf("%s, %s, %s", rc.City, rc.Region, rc.Country)
}

// LocalTime formats now in the request's timezone. An absent or unknown
// zone falls back to server-local time; this never fails the request.
func (rc RequestContext) LocalTime(now time.Time) string {
	loc := time.Local
	if rc.Timezone != "" {
		if parsed, err := time.LoadLocation(rc.Timezone); err == nil {
			loc = parsed
		}
	}
	return now.In(loc).Format("1/2/2006, 3:04:05 PM")
}
