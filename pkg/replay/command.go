package replay

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/scanner"
)

// parseCommand splits a command line into words separated by white space.
// Double-quoted and back-quoted words are unquoted.
func parseCommand(src string) (args []string, err error) {
	var s scanner.Scanner
	s.Init(strings.NewReader(src))
	s.Filename = "command"
	s.Mode = scanner.ScanIdents | scanner.ScanStrings | scanner.ScanRawStrings
	s.IsIdentRune = func(ch rune, i int) bool {
		return ch != scanner.EOF && ch != '"' && ch != '`' && !isSpace(ch)
	}
	s.Error = func(s *scanner.Scanner, msg string) {
		err = fmt.Errorf("%s: %s", s.Position, msg)
	}

	for tok := s.Scan(); tok != scanner.EOF; tok = s.Scan() {
		text := s.TokenText()
		if tok == scanner.String || tok == scanner.RawString {
			if unquoted, err := strconv.Unquote(text); err == nil {
				text = unquoted
			}
		}
		args = append(args, text)
	}

	return args, err
}

func isSpace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

// parseFuncArgsAndCall converts args to the parameter types of f and calls
// it. A trailing error result is returned.
func parseFuncArgsAndCall(f interface{}, args []string) error {
	if err := checkArity(f, args); err != nil {
		return err
	}

	fv := reflect.ValueOf(f)
	ft := reflect.TypeOf(f)

	var rArgs []reflect.Value
	for i := 0; i < ft.NumIn(); i++ {
		at := ft.In(i)
		arg := args[i]

		var av reflect.Value
		switch k := at.Kind(); k {

		case reflect.String:
			av = reflect.ValueOf(arg)

		case reflect.Bool:
			bv, err := strconv.ParseBool(arg)
			if err != nil {
				return err
			}
			av = reflect.ValueOf(bv)

		case reflect.Int, reflect.Int64:
			nf, err := strconv.ParseInt(arg, 10, 64)
			if err != nil {
				return err
			}
			av = reflect.ValueOf(nf)

		case reflect.Float64:
			nf, err := strconv.ParseFloat(arg, 64)
			if err != nil {
				return err
			}
			av = reflect.ValueOf(nf)

		default:
			return fmt.Errorf("unsupported argument type %s", at)
		}

		// named types such as drawing.LineStyle
		rArgs = append(rArgs, av.Convert(at))
	}

	out := fv.Call(rArgs)
	if ft.NumOut() == 0 {
		return nil
	}

	if err, ok := out[ft.NumOut()-1].Interface().(error); ok {
		return err
	}

	return nil
}

func checkArity(f interface{}, args []string) error {
	if n := reflect.TypeOf(f).NumIn(); len(args) != n {
		return fmt.Errorf("expecting %d arguments, got %d", n, len(args))
	}
	return nil
}
