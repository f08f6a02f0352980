package clierror

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"
)

func TestExitCodes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name     string
		got      int
		expected int
	}{
		{"ExitSuccess", ExitSuccess, 0},
		{"ExitGeneral", ExitGeneral, 1},
		{"ExitInvalidInput", ExitInvalidInput, 2},
		{"ExitInsufficientData", ExitInsufficientData, 3},
		{"ExitNotFound", ExitNotFound, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.expected)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	t.Parallel()
	cause := errors.New("line 3: bad nibble")

	tests := []struct {
		name     string
		err      *CLIError
		code     string
		exitCode int
	}{
		{"InvalidArgument", InvalidArgument(cause), CodeInvalidArgument, ExitInvalidInput},
		{"InvalidEncoding", InvalidEncoding(cause), CodeInvalidEncoding, ExitInvalidInput},
		{"LengthMismatch", LengthMismatch(cause), CodeLengthMismatch, ExitInvalidInput},
		{"InsufficientMeasurements", InsufficientMeasurements(1), CodeInsufficientMeasurements, ExitInsufficientData},
		{"FileNotFound", FileNotFound("x.txt", cause), CodeFileNotFound, ExitNotFound},
		{"DeviceNotFound", DeviceNotFound("esp32-01"), CodeDeviceNotFound, ExitNotFound},
		{"TokenNotFound", TokenNotFound(), CodeTokenNotFound, ExitNotFound},
		{"AlreadyExists", AlreadyExists("token"), CodeAlreadyExists, ExitGeneral},
		{"InternalError", InternalError(cause), CodeInternalError, ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("Code = %s, want %s", tt.err.Code, tt.code)
			}
			if tt.err.ExitCode != tt.exitCode {
				t.Errorf("ExitCode = %d, want %d", tt.err.ExitCode, tt.exitCode)
			}
			if tt.err.Message == "" {
				t.Error("Message should not be empty")
			}
			if tt.err.Error() != tt.err.Message {
				t.Error("Error() should return Message")
			}
		})
	}
}

func TestFormatErrorJSON(t *testing.T) {
	t.Parallel()
	out := FormatError(InsufficientMeasurements(1), "json")

	var decoded map[string]any
	if err := json.Unmarshal([]byte(out), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["code"] != CodeInsufficientMeasurements {
		t.Errorf("code = %v, want %s", decoded["code"], CodeInsufficientMeasurements)
	}
	if _, present := decoded["exitCode"]; present {
		t.Error("exit code must not be serialized")
	}
}

func TestFormatErrorHuman(t *testing.T) {
	t.Parallel()
	out := FormatError(DeviceNotFound("esp32-01"), "table")
	if !strings.Contains(out, "Error [DEVICE_NOT_FOUND]") {
		t.Errorf("missing code prefix: %s", out)
	}
	if !strings.Contains(out, "Hint:") {
		t.Errorf("missing hint line: %s", out)
	}

	noHint := FormatError(InternalError(nil), "table")
	if strings.Contains(noHint, "Hint:") {
		t.Errorf("hintless error should not print a hint line: %s", noHint)
	}
}
