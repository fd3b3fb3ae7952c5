package enum

// EnvEnum is the deployment the service runs in.
type EnvEnum string

const (
	LOCAL       EnvEnum = "local"
	DEVELOPMENT EnvEnum = "development"
	STAGING     EnvEnum = "staging"
	PRODUCTION  EnvEnum = "production"
)

func (e EnvEnum) ToString() string {
	if e.IsValid() {
		return string(e)
	}
	return ""
}

func (e EnvEnum) IsValid() bool {
	switch e {
	case LOCAL, DEVELOPMENT, STAGING, PRODUCTION:
		return true
	}
	return false
}

// IsDeployed is true for environments reachable by real payers: cookies
// must be Secure and the provider must be reached over https.
func (e EnvEnum) IsDeployed() bool {
	return e == STAGING || e == PRODUCTION
}
