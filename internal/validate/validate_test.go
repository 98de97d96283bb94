package validate

import (
	stderrors "errors"
	"net"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/manav03panchal/crewboard/internal/errors"
	"github.com/manav03panchal/crewboard/internal/model"
)

// =============================================================================
// Name Tests
// =============================================================================

func TestNames(t *testing.T) {
	tests := []struct {
		name    string
		check   func(string) error
		value   string
		wantErr bool
	}{
		{"project_ok", ProjectName, "Neosphere Exhibition", false},
		{"project_empty", ProjectName, "", true},
		{"project_blank", ProjectName, "   ", true},
		{"project_max", ProjectName, strings.Repeat("a", MaxNameLength), false},
		{"project_too_long", ProjectName, strings.Repeat("a", MaxNameLength+1), true},
		{"member_ok", MemberName, "Aki", false},
		{"member_unicode", MemberName, strings.Repeat("é", MaxNameLength), false},
		{"member_empty", MemberName, "", true},
		{"title_ok", TaskTitle, "Build stage", false},
		{"title_too_long", TaskTitle, strings.Repeat("x", MaxTitleLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.check(tt.value)
			if tt.wantErr {
				assert.Error(t, err)
				assert.True(t, errors.IsUserError(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDescription(t *testing.T) {
	assert.NoError(t, Description(""))
	assert.NoError(t, Description(strings.Repeat("a", MaxDescriptionLength)))
	assert.Error(t, Description(strings.Repeat("a", MaxDescriptionLength+1)))
}

// =============================================================================
// Color Tests
// =============================================================================

func TestHexColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"", false},
		{"#FF5733", false},
		{"#00ff00", false},
		{"FF5733", true},
		{"#FFF", true},
		{"#GGGGGG", true},
	}

	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := HexColor(tt.color)
			if tt.wantErr {
				assert.True(t, stderrors.Is(err, errors.ErrInvalidColor))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

// =============================================================================
// Task Tests
// =============================================================================

func validTask() *model.Task {
	return model.NewTask("Stage", []string{"m1"},
		model.MustParseDate("2025-08-01"), model.MustParseDate("2025-08-10"))
}

func TestNewTask(t *testing.T) {
	require.NoError(t, NewTask(validTask()))

	noTitle := validTask()
	noTitle.Title = " "
	assert.Error(t, NewTask(noTitle))

	noAssignee := validTask()
	noAssignee.AssigneeIDs = nil
	assert.True(t, stderrors.Is(NewTask(noAssignee), errors.ErrNoAssignee))

	noDue := validTask()
	noDue.DueDate = model.Date{}
	assert.True(t, stderrors.Is(NewTask(noDue), errors.ErrInvalidDate))
}

func TestTaskWarnings(t *testing.T) {
	p := model.NewProject("Expo", "", model.Date{})
	p.AddMember(model.Member{ID: "m1", Name: "Aki"})

	task := validTask()
	task.Category = "Development"
	assert.Empty(t, TaskWarnings(p, task))

	task.DueDate = model.MustParseDate("2025-07-01")
	task.AssigneeIDs = []string{"m1", "ghost"}
	task.Category = "Catering"
	task.Status = model.StatusCompleted

	warnings := TaskWarnings(p, task)
	require.Len(t, warnings, 4)
	assert.Contains(t, warnings[0], "before start date")
	assert.Contains(t, warnings[1], "ghost")
	assert.Contains(t, warnings[2], "Catering")
	assert.Contains(t, warnings[3], "no completed date")
}

func TestWebhookName(t *testing.T) {
	assert.NoError(t, WebhookName("team-chat"))
	assert.Error(t, WebhookName(""))
	assert.Error(t, WebhookName("has space"))
}

// =============================================================================
// URL Tests
// =============================================================================

func TestURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https_external", "https://discord.com/api/webhooks/123/abc", false},
		{"http_localhost", "http://localhost:8080/hook", false},
		{"http_loopback", "http://127.0.0.1:9000/hook", false},
		{"empty", "", true},
		{"too_long", "https://example.com/" + strings.Repeat("a", MaxURLLength), true},
		{"ftp_scheme", "ftp://example.com/hook", true},
		{"http_external", "http://example.com/hook", true},
		{"private_ip", "https://192.168.1.10/hook", true},
		{"link_local", "https://169.254.169.254/latest", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := URL(tt.url)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestURLMissingHostname(t *testing.T) {
	err := URL("https:///path")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing hostname")
}

func TestIsInternalIP(t *testing.T) {
	tests := []struct {
		ip       string
		internal bool
	}{
		{"10.1.2.3", true},
		{"172.16.0.1", true},
		{"192.168.0.1", true},
		{"127.0.0.1", true},
		{"::1", true},
		{"fe80::1", true},
		{"8.8.8.8", false},
		{"2001:4860:4860::8888", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			assert.Equal(t, tt.internal, isInternalIP(net.ParseIP(tt.ip)))
		})
	}
}

// =============================================================================
// Generic Tests
// =============================================================================

func TestNonEmpty(t *testing.T) {
	assert.NoError(t, NonEmpty("name", "x"))
	err := NonEmpty("name", "  ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name cannot be empty")
}

func TestInRange(t *testing.T) {
	assert.NoError(t, InRange("progress", 50, 0, 100))
	assert.NoError(t, InRange("progress", 0, 0, 100))
	err := InRange("progress", 101, 0, 100)
	require.Error(t, err)
	assert.Equal(t, "Must be between 0 and 100", errors.GetSuggestion(err))
}

// =============================================================================
// Sanitize Tests
// =============================================================================

func TestSanitizeName(t *testing.T) {
	assert.Equal(t, "Aki", SanitizeName("  Aki\x07 "))
	assert.Equal(t, "Neo sphere", SanitizeName("Neo\n sphere"))
}

func TestSanitizeNote(t *testing.T) {
	assert.Equal(t, "line1\nline2\nline3", SanitizeNote(" line1\r\nline2\rline3\x00 "))
	assert.Equal(t, "tab\there", SanitizeNote("tab\there"))
}

func TestSanitizeList(t *testing.T) {
	assert.Equal(t, []string{"Design", "Ops"}, SanitizeList([]string{" Design ", "", "Ops", "\t"}))
}

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Expo", "Expo"},
		{"Expo/Booth", "Expo_Booth"},
		{`a:b*c?d"e<f>g|h`, "a_b_c_d_e_f_g_h"},
		{"  .hidden. ", "hidden"},
		{"", "fallback"},
		{"...", "fallback"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, SafeFilename(tt.input, "fallback"))
		})
	}

	assert.Len(t, []rune(SafeFilename(strings.Repeat("名", 300), "x")), 200)
}
