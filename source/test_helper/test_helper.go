package test_helper

import (
	"fmt"
	"testing"

	"github.com/tim-hardcastle/Minnow/source/pf"
	"github.com/tim-hardcastle/Minnow/source/settings"
	"github.com/tim-hardcastle/Minnow/source/text"
)

type TestItem struct {
	Input string
	Want  string
}

// Initializes a service from a script in the calling test's test-files
// directory and runs each input through it, comparing what comes out with
// what should. An empty filename gets a service with no script.
func RunTest(t *testing.T, filename string, tests []TestItem, F func(service *pf.Service, input string) string) {
	service := pf.NewService()
	if filename != "" {
		service.InitializeFromFilepath("test-files/" + filename)
	}
	if service.IsBroken() {
		t.Fatalf("Service for filename %q is broken: %s", filename, text.Plain(service.GetErrorReport()))
	}
	for _, test := range tests {
		if settings.SHOW_TESTS {
			fmt.Println("Running test", text.Emph(test.Input))
		}
		got := F(service, test.Input)
		if got != test.Want {
			t.Errorf("Test failed with filename %q, input %q:\nwanted %q\ngot    %q", filename, test.Input, test.Want, got)
		}
	}
}

// The F for testing the values of expressions.
func TestValues(service *pf.Service, input string) string {
	result, errors := service.Do(input)
	if len(errors) > 0 {
		return "error: " + errors[0].ErrorId
	}
	return result
}

// The F for testing which errors expressions produce.
func TestErrors(service *pf.Service, input string) string {
	_, errors := service.Do(input)
	if len(errors) == 0 {
		return "ok"
	}
	return errors[0].ErrorId
}
