package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	err := New(ErrCodeInvalidReference, "target node %s does not exist", "abc")
	want := "INVALID_REFERENCE: target node abc does not exist"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("disk full")
	err := Wrap(ErrCodeStorage, cause, "save map %s", "inbox")

	if !stderrors.Is(err, cause) {
		t.Error("wrapped cause not reachable via errors.Is")
	}
	if got := err.Error(); got != "STORAGE_ERROR: save map inbox: disk full" {
		t.Errorf("Error() = %q", got)
	}
}

func TestIsMatchesCodeThroughChain(t *testing.T) {
	inner := New(ErrCodeFormat, "bad payload")
	outer := fmt.Errorf("import: %w", inner)

	if !Is(outer, ErrCodeFormat) {
		t.Error("Is failed to find code through wrap chain")
	}
	if Is(outer, ErrCodeStorage) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), ErrCodeFormat) {
		t.Error("Is matched a plain error")
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	err := New(ErrCodeMapNotFound, "no map %q", "x")
	if GetCode(err) != ErrCodeMapNotFound {
		t.Errorf("GetCode = %q", GetCode(err))
	}
	if UserMessage(err) != `no map "x"` {
		t.Errorf("UserMessage = %q", UserMessage(err))
	}

	plain := stderrors.New("plain failure")
	if GetCode(plain) != "" {
		t.Errorf("GetCode(plain) = %q, want empty", GetCode(plain))
	}
	if UserMessage(plain) != "plain failure" {
		t.Errorf("UserMessage(plain) = %q", UserMessage(plain))
	}
}

func TestValidateMapID(t *testing.T) {
	tests := []struct {
		id      string
		wantErr bool
	}{
		{"inbox", false},
		{"project-2026.v2", false},
		{"", true},
		{"../etc/passwd", true},
		{".hidden", true},
		{"a/b", true},
		{"with space", true},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			err := ValidateMapID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateMapID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateNodeID(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		wantErr bool
	}{
		{"UUID", "0f3c2a46-9a1c-4c87-a9fe-2f4a5b6c7d8e", false},
		{"Arbitrary", "my node #1", false},
		{"Empty", "", true},
		{"NullByte", "a\x00b", true},
		{"Newline", "a\nb", true},
		{"TooLong", strings.Repeat("x", 257), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateNodeID(tt.id)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateNodeID(%q) = %v, wantErr %v", tt.id, err, tt.wantErr)
			}
		})
	}
}

func TestValidateHexColor(t *testing.T) {
	tests := []struct {
		color   string
		wantErr bool
	}{
		{"", false},
		{"#fff", false},
		{"#A1B2C3", false},
		{"#ffff", true},
		{"red", true},
		{"123456", true},
	}
	for _, tt := range tests {
		t.Run(tt.color, func(t *testing.T) {
			err := ValidateHexColor(tt.color)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateHexColor(%q) = %v, wantErr %v", tt.color, err, tt.wantErr)
			}
		})
	}
}

func TestValidateRenderFormat(t *testing.T) {
	for _, ok := range []string{"svg", "png", "dot"} {
		if err := ValidateRenderFormat(ok); err != nil {
			t.Errorf("ValidateRenderFormat(%q) = %v", ok, err)
		}
	}
	if err := ValidateRenderFormat("pdf"); !Is(err, ErrCodeUnsupported) {
		t.Errorf("ValidateRenderFormat(pdf) = %v, want UNSUPPORTED", err)
	}
}
