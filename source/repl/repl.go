package repl

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lmorg/readline"

	"github.com/tim-hardcastle/Minnow/source/err"
	"github.com/tim-hardcastle/Minnow/source/pf"
	"github.com/tim-hardcastle/Minnow/source/text"
)

// Runs the REPL over a service. Whatever you type in gets evaluated, except
// for the few housekeeping commands.
func Start(service *pf.Service) {
	rline := readline.NewInstance()
	rline.SetPrompt(text.PROMPT)
	lastErrors := service.GetErrors()
	if service.IsBroken() {
		fmt.Print(service.GetErrorReport())
	}
	for {
		line, e := rline.Readline()
		if e != nil {
			return
		}
		line = strings.TrimSpace(line)
		switch {
		case line == "":
			continue
		case line == "quit":
			return
		case line == "help":
			fmt.Print(helpText)
			continue
		case line == "errors":
			if len(lastErrors) == 0 {
				fmt.Println("There are no errors to show you.")
				continue
			}
			fmt.Print(err.GetList(lastErrors))
			continue
		case strings.HasPrefix(line, "why "):
			explain(lastErrors, strings.TrimSpace(line[len("why "):]))
			continue
		}
		result, errors := service.Do(line)
		if len(errors) > 0 {
			lastErrors = errors
			fmt.Print(err.GetList(errors))
			continue
		}
		fmt.Println(result)
	}
}

// Prints the long-form explanation of one of the errors in the last report,
// e.g. 'why 0' for the first of them.
func explain(lastErrors err.Errors, arg string) {
	i, e := strconv.Atoi(arg)
	if e != nil || i < 0 || i >= len(lastErrors) {
		if len(lastErrors) == 0 {
			fmt.Println("There are no errors to explain.")
			return
		}
		fmt.Println("The " + text.Emph("why") + " command wants the number of an error from the last report, from 0 to " +
			strconv.Itoa(len(lastErrors)-1) + ".")
		return
	}
	theError := lastErrors[i]
	explanation := err.ErrorCreatorMap[theError.ErrorId].Explanation(lastErrors, i, theError.Token, theError.Args...)
	fmt.Println(explanation)
}

var helpText = "\n" +
	text.BULLET + "Type a Minnow expression to evaluate it.\n" +
	text.BULLET + "'errors' shows the last error report again.\n" +
	text.BULLET + "'why <n>' explains error number <n> of the last report.\n" +
	text.BULLET + "'quit' quits.\n\n"
