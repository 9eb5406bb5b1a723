package models

// Date layouts used when resolving and rendering statement dates.
const (
	DateLayoutStatement = "1/2/2006"
	DateLayoutDisplay   = "01/02/2006"
	DateLayoutISO       = "2006-01-02"
)

// File permissions
const (
	PermissionReportFile = 0644
	PermissionDirectory  = 0750
)
