package airquality

// Formatter maps a severity band and user preference to a fixed advisory
// message. It is a total, pure function over its domain.
type Formatter struct{}

var bandMessages = map[Severity]string{
	SeverityGood:      "Air quality is good. Normal outdoor activities are fine.",
	SeverityModerate:  "Air quality is acceptable. Consider shortening prolonged outdoor exertion if you notice symptoms.",
	SeverityUnhealthy: "Air quality is poor. Avoid strenuous outdoor activity and wear a mask if you go outside.",
	SeverityHazardous: "Air quality is hazardous. Stay indoors, keep windows closed, and use an N95 mask if you must go out.",
}

// Format returns the advisory for a band. Sensitive group callers get the
// message one caution step up, capped at the top band.
func (Formatter) Format(severity Severity, pref UserPreference) Advisory {
	level := severity
	if pref.SensitiveGroup && level < SeverityHazardous {
		level++
	}
	return Advisory{
		Severity: severity,
		Message:  bandMessages[level],
	}
}
