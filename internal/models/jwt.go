package models

import "github.com/golang-jwt/jwt/v5"

// RoleResearcher is the only role issued by the researcher login
const RoleResearcher = "researcher"

// ResearcherClaims represents the claims of a researcher session token
type ResearcherClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// IsResearcher reports whether the claims grant access to aggregated results
func (c *ResearcherClaims) IsResearcher() bool {
	return c != nil && c.Role == RoleResearcher
}
