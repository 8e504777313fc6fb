package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoutePolicy_Classify(t *testing.T) {
	policy := NewRoutePolicy([]string{"/login", "/signup", "/password-reset"})

	tests := []struct {
		path string
		want RouteClass
	}{
		{"/login", RoutePublic},
		{"/signup", RoutePublic},
		{"/password-reset", RoutePublic},
		{"/", RouteProtected},
		{"/dashboard", RouteProtected},
		{"/login/", RouteProtected},
		{"/signup/extra", RouteProtected},
		{"/unknown", RouteProtected},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.Classify(tt.path))
		})
	}
}

func TestBypassList_Match(t *testing.T) {
	list := NewBypassList([]string{"/api", "/static/", "/_image"}, []string{".png", "ico"})

	tests := []struct {
		path string
		want bool
	}{
		{"/api", true},
		{"/api/auth/signup", true},
		{"/apiary", false},
		{"/static/app.css", true},
		{"/_image", true},
		{"/_image/thumb", true},
		{"/logo.png", true},
		{"/nested/dir/LOGO.PNG", true},
		{"/favicon.ico", true},
		{"/photo.jpg", false},
		{"/", false},
		{"/login", false},
		{"/png", false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, list.Match(tt.path))
		})
	}
}

func TestBypassList_EmptyEntriesNeverMatch(t *testing.T) {
	list := BypassList{PrefixMatcher(""), ExtensionMatcher("")}

	assert.False(t, list.Match("/anything"))
	assert.False(t, list.Match("/file.png"))
}

func TestDecisionString(t *testing.T) {
	assert.Equal(t, "forward", DecisionForward.String())
	assert.Equal(t, "redirect", DecisionRedirect.String())
	assert.Equal(t, "public", RoutePublic.String())
	assert.Equal(t, "protected", RouteProtected.String())
}
