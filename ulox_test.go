package ulox_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/kolkov/ulox"
)

func TestRun(t *testing.T) {
	tests := []struct {
		name    string
		program string
		config  *ulox.Config
		want    string
		wantErr bool
	}{
		{
			name:    "precedence",
			program: `print 1 + 2 * 3;`,
			want:    "7\n",
		},
		{
			name:    "grouping",
			program: `print (1 + 2) * 3;`,
			want:    "9\n",
		},
		{
			name:    "block shadowing",
			program: `var a = 1; { var a = 2; print a; } print a;`,
			want:    "2\n1\n",
		},
		{
			name:    "function call",
			program: `fun f(a,b){ return a+b; } print f(1,2);`,
			want:    "3\n",
		},
		{
			name:    "equality across types",
			program: `print 1 == "1";`,
			want:    "false\n",
		},
		{
			name:    "string concatenation",
			program: `print "foo" + "bar";`,
			want:    "foobar\n",
		},
		{
			name:    "truthiness",
			program: `if (0) print "zero"; if ("") print "empty"; if (nil) print "nil"; else print "falsy";`,
			want:    "zero\nempty\nfalsy\n",
		},
		{
			name:    "logical operators return operands",
			program: `print nil or "default"; print 1 and 2; print false and boom;`,
			want:    "default\n2\nfalse\n",
		},
		{
			name:    "for loop",
			program: `for (var i = 0; i < 3; i = i + 1) print i;`,
			want:    "0\n1\n2\n",
		},
		{
			name:    "break",
			program: `var i = 0; while (true) { if (i == 2) break; print i; i = i + 1; } print "done";`,
			want:    "0\n1\ndone\n",
		},
		{
			name:    "recursion",
			program: `fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); } print fib(15);`,
			want:    "610\n",
		},
		{
			name:    "number formatting",
			program: `print 10 / 4; print 6 / 2; print 1 / 0; print -0.5;`,
			want:    "2.5\n3\nInfinity\n-0.5\n",
		},
		{
			name:    "print function",
			program: `fun add(a, b) {} print add; print clock;`,
			want:    "<fn add>\n<native fn>\n",
		},
		{
			name:    "variables",
			program: `print greeting + ", " + name;`,
			config:  &ulox.Config{Variables: map[string]string{"greeting": "hello", "name": "world"}},
			want:    "hello, world\n",
		},
		{
			name:    "variable shadowed by program",
			program: `var name = "local"; print name;`,
			config:  &ulox.Config{Variables: map[string]string{"name": "world"}},
			want:    "local\n",
		},
		{
			name:    "matches",
			program: `print matches("abc123", "[0-9]+"); print matches("abc", "^[0-9]+$");`,
			want:    "true\nfalse\n",
		},
		{
			name:    "replace",
			program: `print replace("a-b-c", "-", "+");`,
			want:    "a+b+c\n",
		},
		{
			name:    "runtime error",
			program: `print "a" + 1;`,
			wantErr: true,
		},
		{
			name:    "syntax error",
			program: `print 1 +;`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ulox.Run(tt.program, tt.config)
			if (err != nil) != tt.wantErr {
				t.Errorf("Run() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("Run() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestClosureCapturesDefinitionScope(t *testing.T) {
	program := `
var x = "global";
fun outer() {
  var x = "captured";
  fun show() { print x; }
  return show;
}
var f = outer();
fun caller() {
  var x = "caller";
  f();
}
caller();

fun makeCounter() {
  var i = 0;
  fun count() { i = i + 1; return i; }
  return count;
}
var a = makeCounter();
var b = makeCounter();
print a();
print a();
print b();
`
	got, err := ulox.Run(program, nil)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	want := "captured\n1\n2\n1\n"
	if got != want {
		t.Errorf("Run() = %q, want %q", got, want)
	}
}

func TestRuntimeError(t *testing.T) {
	tests := []struct {
		name     string
		program  string
		wantOut  string
		wantLine int
		wantMsg  string
	}{
		{
			name:     "mixed add",
			program:  `print "a" + 1;`,
			wantLine: 1,
			wantMsg:  "Operands must be two numbers or two strings",
		},
		{
			name:     "arity mismatch",
			program:  "fun f(a,b){ return a+b; }\nprint f(1);",
			wantLine: 2,
			wantMsg:  "Expected 2 but got 1 arguments",
		},
		{
			name:     "output before error is kept",
			program:  "print 1;\nprint nope;\nprint 3;",
			wantOut:  "1\n",
			wantLine: 2,
			wantMsg:  "Undefined variable 'nope'",
		},
		{
			name:     "invalid pattern",
			program:  `print matches("a", "(");`,
			wantLine: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ulox.Run(tt.program, nil)
			var rerr *ulox.RuntimeError
			if !errors.As(err, &rerr) {
				t.Fatalf("Run() error = %v (%T), want *RuntimeError", err, err)
			}
			if rerr.Line != tt.wantLine {
				t.Errorf("Line = %d, want %d", rerr.Line, tt.wantLine)
			}
			if tt.wantMsg != "" && rerr.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", rerr.Message, tt.wantMsg)
			}
			want := fmt.Sprintf("%s: [line %d]", rerr.Message, tt.wantLine)
			if err.Error() != want {
				t.Errorf("Error() = %q, want %q", err.Error(), want)
			}
			if got != tt.wantOut {
				t.Errorf("output = %q, want %q", got, tt.wantOut)
			}
		})
	}
}

func TestCompileError(t *testing.T) {
	tests := []struct {
		name    string
		program string
		want    []ulox.Diagnostic
	}{
		{
			name:    "two independent syntax errors",
			program: "print 1 +;\nprint 2;\nvar = 3;\nprint 4;",
			want: []ulox.Diagnostic{
				{Kind: ulox.Syntax, Line: 1, Message: "Expect expression at token ';' at line 1"},
				{Kind: ulox.Syntax, Line: 3, Message: "Expect variable name at token '=' at line 3"},
			},
		},
		{
			name:    "lexical before syntax",
			program: "print 1\n@",
			want: []ulox.Diagnostic{
				{Kind: ulox.Lexical, Line: 2, Message: "Unexpected character '@' at line 2"},
				{Kind: ulox.Syntax, Line: 2, Message: "Expect ';' after value at end at line 2"},
			},
		},
		{
			name:    "unterminated string",
			program: "print \"abc;\n",
			want: []ulox.Diagnostic{
				{Kind: ulox.Lexical, Line: 2, Message: "Unterminated string at line 2"},
				{Kind: ulox.Syntax, Line: 2, Message: "Expect expression at end at line 2"},
			},
		},
		{
			name:    "invalid assignment target",
			program: "var a; a + 1 = 2;",
			want: []ulox.Diagnostic{
				{Kind: ulox.Syntax, Line: 1, Message: "Invalid assignment target at token '=' at line 1"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prog, err := ulox.Compile(tt.program)
			if prog != nil {
				t.Error("Compile() returned a program along with errors")
			}
			var ce *ulox.CompileError
			if !errors.As(err, &ce) {
				t.Fatalf("Compile() error = %v (%T), want *CompileError", err, err)
			}
			if len(ce.Diagnostics) != len(tt.want) {
				t.Fatalf("Diagnostics = %v, want %v", ce.Diagnostics, tt.want)
			}
			for i, d := range ce.Diagnostics {
				if d != tt.want[i] {
					t.Errorf("Diagnostics[%d] = %+v, want %+v", i, d, tt.want[i])
				}
			}
			if got := strings.Count(err.Error(), "\n") + 1; got != len(tt.want) {
				t.Errorf("Error() has %d lines, want %d", got, len(tt.want))
			}
		})
	}
}

func TestCompileErrorRunsNothing(t *testing.T) {
	var out bytes.Buffer
	err := ulox.Exec("print \"before\";\nprint 1 +;\nprint \"after\";", &out, nil)
	if ulox.ExitCode(err) != ulox.ExitDataErr {
		t.Fatalf("ExitCode = %d, want %d (err %v)", ulox.ExitCode(err), ulox.ExitDataErr, err)
	}
	if out.Len() != 0 {
		t.Errorf("output = %q, want nothing", out.String())
	}
}

func TestExitCode(t *testing.T) {
	_, compileErr := ulox.Run(`print ;`, nil)
	_, runtimeErr := ulox.Run(`print -"a";`, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ulox.ExitOK},
		{"compile", compileErr, ulox.ExitDataErr},
		{"runtime", runtimeErr, ulox.ExitSoftware},
		{"wrapped compile", fmt.Errorf("script: %w", compileErr), ulox.ExitDataErr},
		{"other", errors.New("write failed"), ulox.ExitSoftware},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ulox.ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExec(t *testing.T) {
	var out bytes.Buffer
	err := ulox.Exec(`print "to writer";`, &out, nil)
	if err != nil {
		t.Fatalf("Exec() error = %v", err)
	}
	if out.String() != "to writer\n" {
		t.Errorf("output = %q, want %q", out.String(), "to writer\n")
	}
}

func TestProgramRunWithOutput(t *testing.T) {
	prog := ulox.MustCompile(`print "x";`)

	var out bytes.Buffer
	got, err := prog.Run(&ulox.Config{Output: &out})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got != "" {
		t.Errorf("Run() returned %q, want empty string when Output is set", got)
	}
	if out.String() != "x\n" {
		t.Errorf("output = %q, want %q", out.String(), "x\n")
	}
}

func TestProgramRunsAreIndependent(t *testing.T) {
	prog := ulox.MustCompile(`var n; if (n == nil) n = 0; n = n + 1; print n;`)
	for i := 0; i < 3; i++ {
		got, err := prog.Run(nil)
		if err != nil {
			t.Fatalf("Run() error = %v", err)
		}
		if got != "1\n" {
			t.Errorf("run %d = %q, want %q", i, got, "1\n")
		}
	}
}

func TestProgramConcurrent(t *testing.T) {
	prog := ulox.MustCompile(`
fun fib(n) { if (n < 2) return n; return fib(n - 1) + fib(n - 2); }
print fib(12);
print matches(name, "^w[0-9]+$");
`)

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got, err := prog.Run(&ulox.Config{
				Variables: map[string]string{"name": fmt.Sprintf("w%d", i)},
			})
			if err != nil {
				errs <- err
				return
			}
			if got != "144\ntrue\n" {
				errs <- fmt.Errorf("worker %d got %q", i, got)
			}
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Error(err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustCompile did not panic on invalid source")
		}
	}()
	ulox.MustCompile(`print (;`)
}

func TestProgramDumps(t *testing.T) {
	src := `for (var i = 0; i < 2; i = i + 1) print i * 2;`
	prog := ulox.MustCompile(src)

	if prog.Source() != src {
		t.Errorf("Source() = %q, want %q", prog.Source(), src)
	}

	dump := prog.AST()
	for _, want := range []string{"var i = 0;", "while (< i 2)", "print (* i 2);", "(= i (+ i 1));"} {
		if !strings.Contains(dump, want) {
			t.Errorf("AST() missing %q:\n%s", want, dump)
		}
	}

	toks := strings.Split(strings.TrimSuffix(prog.Tokens(), "\n"), "\n")
	if len(toks) != 23 {
		t.Errorf("Tokens() has %d lines, want 23:\n%s", len(toks), prog.Tokens())
	}
	if !strings.HasPrefix(toks[len(toks)-1], "EOF") {
		t.Errorf("last token = %q, want EOF", toks[len(toks)-1])
	}
}

func TestSession(t *testing.T) {
	var out bytes.Buffer
	s := ulox.NewSession(&ulox.Config{Output: &out})

	steps := []struct {
		src     string
		wantErr int
	}{
		{`var count = 1;`, ulox.ExitOK},
		{`fun bump() { count = count + 1; return count; }`, ulox.ExitOK},
		{`print bump();`, ulox.ExitOK},
		{`print (;`, ulox.ExitDataErr},
		{`var other = 5; print nope;`, ulox.ExitSoftware},
		{`print count + other;`, ulox.ExitOK},
	}

	for _, step := range steps {
		err := s.Eval(step.src)
		if got := ulox.ExitCode(err); got != step.wantErr {
			t.Errorf("Eval(%q) exit = %d, want %d (err %v)", step.src, got, step.wantErr, err)
		}
	}

	if want := "2\n7\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	lookups := []struct {
		name string
		want string
		ok   bool
	}{
		{"count", "2", true},
		{"other", "5", true},
		{"bump", "<fn bump>", true},
		{"clock", "<native fn>", true},
		{"nope", "", false},
	}
	for _, l := range lookups {
		got, ok := s.Lookup(l.name)
		if got != l.want || ok != l.ok {
			t.Errorf("Lookup(%q) = %q, %v, want %q, %v", l.name, got, ok, l.want, l.ok)
		}
	}
}

func TestProgramFunctions(t *testing.T) {
	prog := ulox.MustCompile(`
fun first() {}
var x = 1;
{ fun hidden() {} }
fun second(a, b) { fun inner() {} }
`)
	got := strings.Join(prog.Functions(), ",")
	if got != "first,second" {
		t.Errorf("Functions() = %q, want %q", got, "first,second")
	}
}

func TestDiagnosticKindString(t *testing.T) {
	if ulox.Lexical.String() != "lexical" || ulox.Syntax.String() != "syntax" {
		t.Errorf("kinds = %q, %q", ulox.Lexical, ulox.Syntax)
	}
}

func ExampleRun() {
	output, _ := ulox.Run(`print 1 + 2 * 3;`, nil)
	fmt.Print(output)
	// Output: 7
}

func ExampleCompile() {
	prog, _ := ulox.Compile(`fun greet(who) { return "hello " + who; } print greet(name);`)
	output, _ := prog.Run(&ulox.Config{Variables: map[string]string{"name": "world"}})
	fmt.Print(output)
	// Output: hello world
}

func ExampleCompileError() {
	_, err := ulox.Compile("print 1 +;\nvar = 2;")
	fmt.Println(err)
	fmt.Println(ulox.ExitCode(err))
	// Output:
	// Expect expression at token ';' at line 1
	// Expect variable name at token '=' at line 2
	// 65
}

func ExampleSession() {
	var out bytes.Buffer
	s := ulox.NewSession(&ulox.Config{Output: &out})
	_ = s.Eval(`var total = 40;`)
	_ = s.Eval(`print total + 2;`)
	fmt.Print(out.String())
	// Output: 42
}
