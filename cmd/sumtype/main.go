// Command sumtype is an interactive shell for the sum-type engine: declare
// enums, construct values, and evaluate exhaustiveness-checked matches.
//
//	$ sumtype -schema types.yaml
//	==> enum Moeda { Centavo, Real(u8) }
//	==> let m = Moeda::Real(5)
//	==> match m { Centavo => 1, Real(n) => n }
//	5
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"
	"go.uber.org/zap"

	"github.com/variantlab/sumtype"
)

const (
	appName     = "sumtype"
	historyFile = ".sumtype_history"
	prompt      = "==> "
)

var helpText = `
Declarations, values and matches:
  enum Name { Variant(type, ...), ... }     declare a sum type
  enum Name<T> { Some(T), None }            declare a generic sum type
  Name::Variant(arg, ...)                   construct and print a value
  let x = Name::Variant(arg, ...)           bind a value for later lines
  match x { Variant(a, b) => a, _ => 0 }    match (checked for exhaustiveness)

Commands:
  :types   List declared types
  :help    Show this help
  :quit    Exit
`

func red(s string) string   { return "\x1b[31m" + s + "\x1b[0m" }
func green(s string) string { return "\x1b[32m" + s + "\x1b[0m" }
func blue(s string) string  { return "\x1b[94m" + s + "\x1b[0m" }

func main() {
	var (
		schemaPath string
		debug      bool
	)
	flag.StringVar(&schemaPath, "schema", "", "YAML schema to preload declarations from")
	flag.BoolVar(&debug, "debug", false, "Debug mode")
	flag.Parse()

	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	if debug {
		logger, err = zap.NewDevelopment()
		if err != nil {
			panic(err)
		}
	}
	defer logger.Sync()

	reg := sumtype.NewRegistry()

	if schemaPath != "" {
		schema, err := sumtype.LoadSchemaFile(schemaPath)
		if err != nil {
			logger.Sugar().Fatalf("Error loading schema %s: %v", schemaPath, err)
		}
		if err := schema.Apply(reg); err != nil {
			logger.Sugar().Fatalf("Error applying schema %s: %v", schemaPath, err)
		}
		logger.Sugar().Debugf("Loaded %d declaration(s) from %s", len(schema.Types), schemaPath)
	}

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)

	histPath := historyPath()
	if f, err := os.Open(histPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer saveHistory(line, histPath, logger)

	fmt.Printf("%s shell\nCtrl+C cancels input, Ctrl+D exits. Type :help for help.\n", appName)

	env := map[string]*sumtype.Value{}
	for {
		input, err := line.Prompt(prompt)
		if err == liner.ErrPromptAborted {
			continue
		}
		if err != nil { // io.EOF on Ctrl+D
			fmt.Println()
			return
		}
		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		switch {
		case input == ":quit":
			return
		case input == ":help":
			fmt.Println(helpText)
		case input == ":types":
			for _, d := range reg.Types() {
				fmt.Println(blue(sumtype.FormatDecl(d)))
			}
		case strings.HasPrefix(input, ":"):
			fmt.Println(red("unknown command " + input))
		default:
			eval(reg, env, input)
		}
	}
}

func eval(reg *sumtype.Registry, env map[string]*sumtype.Value, input string) {
	switch {
	case strings.HasPrefix(input, "enum"):
		decl, err := reg.DeclareSource(input)
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		fmt.Println(green(sumtype.FormatDecl(decl)))

	case strings.HasPrefix(input, "match"):
		res, err := reg.EvalMatchSource(input, env)
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		fmt.Println(blue(render(res)))

	case strings.HasPrefix(input, "let"):
		name, expr, err := splitLet(input)
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		v, err := reg.ConstructSource(expr, env)
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		env[name] = v
		fmt.Println(blue(name + " = " + sumtype.FormatValue(v)))

	default:
		v, err := reg.ConstructSource(input, env)
		if err != nil {
			fmt.Println(red(err.Error()))
			return
		}
		fmt.Println(blue(sumtype.FormatValue(v)))
	}
}

// splitLet parses `let name = expr` without involving the engine grammar.
func splitLet(input string) (name, expr string, err error) {
	rest := strings.TrimSpace(strings.TrimPrefix(input, "let"))
	eq := strings.IndexByte(rest, '=')
	if eq < 0 {
		return "", "", fmt.Errorf("let needs the form: let name = <value>")
	}
	name = strings.TrimSpace(rest[:eq])
	expr = strings.TrimSpace(rest[eq+1:])
	if name == "" || expr == "" {
		return "", "", fmt.Errorf("let needs the form: let name = <value>")
	}
	return name, expr, nil
}

func render(res any) string {
	switch v := res.(type) {
	case *sumtype.Value:
		return sumtype.FormatValue(v)
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func historyPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return historyFile
	}
	return filepath.Join(home, historyFile)
}

func saveHistory(line *liner.State, path string, logger *zap.Logger) {
	f, err := os.Create(path)
	if err != nil {
		logger.Sugar().Debugf("Cannot write history %s: %v", path, err)
		return
	}
	defer f.Close()
	line.WriteHistory(f)
}
