// Package pf provides an API for Minnow: for the REPL, for the tests, and
// for anyone who wants to embed a Minnow service in their own code.
package pf

import (
	"os"

	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/evaluator"
	"github.com/tim-hardcastle/Minnow/source/initializer"
	"github.com/tim-hardcastle/Minnow/source/parser"
	"github.com/tim-hardcastle/Minnow/source/token"
	"github.com/tim-hardcastle/Minnow/source/values"
)

// A Service is one script, initialized. If the script has errors the Service
// still exists, but is broken: you can ask it what's wrong with it, and
// nothing else.
type Service struct {
	model  *evaluator.Model
	errors err.Errors
}

func NewService() *Service {
	model, _ := initializer.Initialize("", "def")
	return &Service{model: model, errors: err.Errors{}}
}

func (s *Service) InitializeFromCode(code string) {
	s.initialize("code", code)
}

func (s *Service) InitializeFromFilepath(filepath string) {
	code, e := os.ReadFile(filepath)
	if e != nil {
		s.errors = err.Errors{err.CreateErr("init/source/open", token.Token{Source: filepath}, filepath)}
		return
	}
	s.initialize(filepath, string(code))
}

func (s *Service) initialize(source, code string) {
	s.model, s.errors = initializer.Initialize(source, code)
}

func (s *Service) IsBroken() bool {
	return len(s.errors) > 0
}

// The errors the script failed to initialize with, if it did.
func (s *Service) GetErrors() err.Errors {
	return s.errors
}

func (s *Service) GetErrorReport() string {
	return err.GetList(s.errors)
}

// Evaluates one line in the context of the service's script, and returns
// either a description of the resulting value, or the errors in the line.
// Everything that can be caught before evaluation is, and is reported all
// together: evaluation happens only if the line checks out.
func (s *Service) Do(line string) (string, err.Errors) {
	if s.IsBroken() {
		return "", err.Errors{err.CreateErr("repl/check", token.Token{Source: "REPL input"})}
	}
	node, errors := parser.ParseLine("REPL input", line)
	if len(errors) > 0 {
		return "", errors
	}
	env := map[string]string{}
	for name, v := range s.model.Constants {
		env[name] = s.model.Types.NameOf(v.T)
	}
	_, errors = initializer.CheckExpression(s.model, node, env, "")
	if len(errors) > 0 {
		return "", errors
	}
	result := evaluator.Evaluate(node, &evaluator.Context{Model: s.model, Env: s.model.Constants})
	if result.T == values.ERROR {
		return "", result.V.(err.Errors)
	}
	if result.T == values.UNSAT {
		return "", err.Errors{err.CreateErr("eval/unsatisfied", node.GetToken())}
	}
	return s.model.Describe(result), nil
}
