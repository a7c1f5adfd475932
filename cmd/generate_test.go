package cmd

import "testing"

func TestParseAutomation(t *testing.T) {
	t.Parallel()
	tests := []struct {
		input   string
		want    automation
		wantErr bool
	}{
		{"bitbucket", automationBitbucket, false},
		{"Bitbucket", automationBitbucket, false},
		{"b", automationBitbucket, false},
		{"git", automationGit, false},
		{"G", automationGit, false},
		{"svn", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		got, err := parseAutomation(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseAutomation(%q) err = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseAutomation(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}
