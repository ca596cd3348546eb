// Command rustlex drives the tokenizer package from the shell: it reads
// Rust source (a file argument or stdin) and reports the resulting
// token stream, or the earliest rejection, in one of a few output
// shapes. Each subcommand shares the edition/cleaning/doc-lowering
// options that configure rustlex.Options.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/rustlex/rustlex"
	"github.com/rustlex/rustlex/reprocess"
	"github.com/rustlex/rustlex/token"
	"github.com/rustlex/rustlex/tokenizer"
)

// commonOptions are the flags shared by every subcommand that runs the
// tokenizer.
type commonOptions struct {
	Edition          string `help:"Rust edition: 2015, 2018, 2021 or 2024." default:"2021" enum:"2015,2018,2021,2024"`
	Cleaning         string `help:"Pre-tokenising cleanup to run." default:"none" enum:"none,shebang,shebang-and-frontmatter"`
	LowerDocComments bool   `help:"Expand doc comments into their attribute-token form."`
}

func (c commonOptions) toRustlexOptions() rustlex.Options {
	opts := rustlex.Options{LowerDocComments: c.LowerDocComments}
	switch c.Edition {
	case "2015", "2018":
		opts.Edition = rustlex.Edition2015
	case "2021":
		opts.Edition = rustlex.Edition2021
	case "2024":
		opts.Edition = rustlex.Edition2024
	}
	switch c.Cleaning {
	case "shebang":
		opts.Cleaning = rustlex.CleaningShebang
	case "shebang-and-frontmatter":
		opts.Cleaning = rustlex.CleaningShebangAndFrontmatter
	}
	return opts
}

// CLI is the top-level kong command tree.
type CLI struct {
	Test        testCommand        `cmd:"" help:"Tokenize a source file or xfail case and report success or rejection."`
	Inspect     inspectCommand     `cmd:"" help:"Tokenize a source file and print every token with its attributes."`
	Coarse      coarseCommand      `cmd:"" help:"Tally token kinds produced for a source file."`
	Identcheck  identcheckCommand  `cmd:"" help:"Check whether a single word lexes as one Identifier/RawIdentifier token."`
	Proptest    proptestCommand    `cmd:"" help:"Run the built-in deterministic property checks a fixed number of rounds."`
	Compare     compareCommand     `cmd:"" help:"Compare token streams against a reference lexer (requires an external collaborator)."`
	DeclCompare declCompareCommand `cmd:"" help:"Compare against a declarative grammar oracle (requires an external collaborator)."`
}

func main() {
	var cli CLI
	parser := kong.Must(&cli,
		kong.Name("rustlex"),
		kong.Description("Fine-grained lexical analysis of Rust source text."),
		kong.UsageOnError(),
	)
	kongCtx, err := parser.Parse(os.Args[1:])
	parser.FatalIfErrorf(err)
	if err := kongCtx.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "rustlex:", err)
		os.Exit(exitCodeFor(err))
	}
}

// exitCode is implemented by subcommand errors that want a specific
// process exit status instead of the default 1.
type exitCode interface {
	ExitCode() int
}

func exitCodeFor(err error) int {
	if ec, ok := err.(exitCode); ok {
		return ec.ExitCode()
	}
	return 1
}

type rejectionExit struct{ err error }

func (rejectionExit) ExitCode() int { return 3 }
func (r rejectionExit) Error() string {
	return strings.Join(tokenizer.Describe(r.err), "\n")
}

func readInput(path string) ([]byte, error) {
	if path == "" || path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// testCommand tokenizes a file and reports success or the earliest
// rejection, exiting 0 when the outcome is the expected one and 3 on an
// unexpected rejection or on an --xfail input that was accepted.
type testCommand struct {
	commonOptions
	Path  string `arg:"" optional:"" help:"Source file to tokenize; stdin if omitted."`
	Xfail bool   `help:"Expect this input to be rejected; exit nonzero if it is instead accepted."`
	Short bool   `help:"Print only a one-line verdict."`
}

func (c *testCommand) Run() error {
	src, err := readInput(c.Path)
	if err != nil {
		return err
	}
	_, terr := tokenizer.Tokenize(src, c.toRustlexOptions())
	switch {
	case terr == nil && c.Xfail:
		fmt.Println("FAIL: expected rejection, input was accepted")
		return rejectionExit{fmt.Errorf("xfail input was accepted")}
	case terr != nil && !c.Xfail:
		if c.Short {
			fmt.Println("FAIL:", terr)
		} else {
			for _, line := range tokenizer.Describe(terr) {
				fmt.Println(line)
			}
		}
		return rejectionExit{terr}
	case terr != nil && c.Xfail:
		fmt.Println("PASS: rejected as expected:", terr)
		return nil
	default:
		fmt.Println("PASS: accepted")
		return nil
	}
}

// inspectCommand prints every token's kind, byte span, and attributes.
type inspectCommand struct {
	commonOptions
	Path    string `arg:"" optional:"" help:"Source file to tokenize; stdin if omitted."`
	Verbose bool   `help:"Also print the decoded LITERAL_COMPONENT sequence for quoted literals."`
}

func (c *inspectCommand) Run() error {
	src, err := readInput(c.Path)
	if err != nil {
		return err
	}
	toks, terr := tokenizer.Tokenize(src, c.toRustlexOptions())
	if terr != nil {
		for _, line := range tokenizer.Describe(terr) {
			fmt.Println(line)
		}
		return rejectionExit{terr}
	}
	for _, t := range toks {
		fmt.Printf("%-20s [%d,%d) %s\n", t.Kind, t.Start, t.End, attrSummary(t))
		if c.Verbose && isQuotedLiteral(t.Kind) {
			for _, line := range reprocess.DescribeComponents(literalBody(t)) {
				fmt.Println("    " + line)
			}
		}
	}
	return nil
}

func isQuotedLiteral(k token.Kind) bool {
	switch k {
	case token.CharacterLiteral, token.ByteLiteral, token.StringLiteral, token.ByteStringLiteral, token.CStringLiteral:
		return true
	default:
		return false
	}
}

func literalBody(t token.Token) []rune {
	switch t.Kind {
	case token.StringLiteral:
		return t.RepresentedString
	case token.CharacterLiteral:
		return []rune{t.RepresentedCharacter}
	case token.ByteLiteral:
		return []rune{rune(t.RepresentedByte)}
	case token.ByteStringLiteral, token.CStringLiteral:
		out := make([]rune, len(t.RepresentedBytes))
		for i, b := range t.RepresentedBytes {
			out[i] = rune(b)
		}
		return out
	default:
		return nil
	}
}

func attrSummary(t token.Token) string {
	switch t.Kind {
	case token.Identifier, token.RawIdentifier:
		return "ident=" + string(t.RepresentedIdent)
	case token.LifetimeOrLabel, token.RawLifetimeOrLabel:
		return "name='" + string(t.Name) + "'"
	case token.Punctuation:
		return "mark=" + string(t.Mark)
	case token.CharacterLiteral:
		return fmt.Sprintf("char=%q suffix=%q", t.RepresentedCharacter, string(t.Suffix))
	case token.ByteLiteral:
		return fmt.Sprintf("byte=0x%02x suffix=%q", t.RepresentedByte, string(t.Suffix))
	case token.StringLiteral, token.RawStringLiteral:
		return fmt.Sprintf("string=%q suffix=%q", string(t.RepresentedString), string(t.Suffix))
	case token.ByteStringLiteral, token.RawByteStringLiteral, token.CStringLiteral, token.RawCStringLiteral:
		return fmt.Sprintf("bytes=%v suffix=%q", t.RepresentedBytes, string(t.Suffix))
	case token.IntegerLiteral:
		return fmt.Sprintf("base=%s digits=%q suffix=%q", t.IntBase, string(t.Digits), string(t.Suffix))
	case token.FloatLiteral:
		return fmt.Sprintf("body=%q suffix=%q", string(t.FloatBody), string(t.Suffix))
	case token.LineComment, token.BlockComment:
		return fmt.Sprintf("style=%s body=%q", t.Style, string(t.Body))
	default:
		return ""
	}
}

// coarseCommand tallies token kinds, the way a quick sanity pass over a
// large corpus would.
type coarseCommand struct {
	commonOptions
	Path string `arg:"" optional:"" help:"Source file to tokenize; stdin if omitted."`
}

func (c *coarseCommand) Run() error {
	src, err := readInput(c.Path)
	if err != nil {
		return err
	}
	toks, terr := tokenizer.Tokenize(src, c.toRustlexOptions())
	if terr != nil {
		for _, line := range tokenizer.Describe(terr) {
			fmt.Println(line)
		}
		return rejectionExit{terr}
	}
	counts := map[token.Kind]int{}
	for _, t := range toks {
		counts[t.Kind]++
	}
	for k := token.Whitespace; k <= token.FloatLiteral; k++ {
		if n := counts[k]; n > 0 {
			fmt.Printf("%-20s %d\n", k, n)
		}
	}
	fmt.Println("total", len(toks))
	return nil
}

// identcheckCommand checks whether a single word is a valid identifier
// under the selected edition, distinguishing Identifier, RawIdentifier,
// and rejection.
type identcheckCommand struct {
	commonOptions
	Word string `arg:"" help:"Candidate identifier text, e.g. 'foo' or 'r#fn'."`
}

func (c *identcheckCommand) Run() error {
	tok, ok := tokenizer.TokenizeSingle([]byte(c.Word), c.toRustlexOptions())
	if !ok {
		fmt.Println("rejected: not a single Identifier or RawIdentifier token")
		return rejectionExit{fmt.Errorf("not a valid identifier")}
	}
	switch tok.Kind {
	case token.Identifier:
		fmt.Printf("Identifier, NFC form %q\n", string(tok.RepresentedIdent))
	case token.RawIdentifier:
		fmt.Printf("RawIdentifier, NFC form %q\n", string(tok.RepresentedIdent))
	default:
		fmt.Println("rejected: lexes as", tok.Kind, "not an identifier")
		return rejectionExit{fmt.Errorf("not an identifier")}
	}
	return nil
}

// proptestCommand runs a small set of deterministic structural property
// checks a fixed number of rounds each, varying the input by round
// index rather than by real randomness (Date.now/math.rand equivalents
// are unavailable in this pipeline's deterministic core, and a fixed
// seed would just be randomness in a trenchcoat).
type proptestCommand struct {
	commonOptions
	Rounds int `help:"Number of structural variants to check per property." default:"64"`
}

func (c *proptestCommand) Run() error {
	opts := c.toRustlexOptions()
	failures := 0
	failures += checkRoundTripIdempotence(opts, c.Rounds)
	failures += checkWhitespaceNeverEmpty(opts, c.Rounds)
	failures += checkPunctuationSingleRune(opts, c.Rounds)
	if failures > 0 {
		fmt.Printf("%d propert%s failed\n", failures, plural(failures))
		return rejectionExit{fmt.Errorf("%d property failures", failures)}
	}
	fmt.Printf("all properties held over %d rounds\n", c.Rounds)
	return nil
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

// checkRoundTripIdempotence checks that concatenating every token's
// source span reproduces the tokenized input exactly, for a family of
// small synthetic sources.
func checkRoundTripIdempotence(opts rustlex.Options, rounds int) int {
	failures := 0
	for i := 0; i < rounds; i++ {
		src := syntheticSource(i)
		toks, err := tokenizer.Tokenize([]byte(src), opts)
		if err != nil {
			continue
		}
		var rebuilt []byte
		for _, t := range toks {
			rebuilt = append(rebuilt, src[t.Start:t.End]...)
		}
		if string(rebuilt) != src {
			failures++
		}
	}
	return failures
}

// checkWhitespaceNeverEmpty checks the termination invariant that every
// Whitespace token has nonzero length.
func checkWhitespaceNeverEmpty(opts rustlex.Options, rounds int) int {
	failures := 0
	for i := 0; i < rounds; i++ {
		src := syntheticSource(i)
		toks, err := tokenizer.Tokenize([]byte(src), opts)
		if err != nil {
			continue
		}
		for _, t := range toks {
			if t.Kind == token.Whitespace && t.Len() == 0 {
				failures++
			}
		}
	}
	return failures
}

// checkPunctuationSingleRune checks that every Punctuation token spans
// exactly one rune's worth of bytes in the synthetic corpus (which
// contains no multi-byte punctuation).
func checkPunctuationSingleRune(opts rustlex.Options, rounds int) int {
	failures := 0
	for i := 0; i < rounds; i++ {
		src := syntheticSource(i)
		toks, err := tokenizer.Tokenize([]byte(src), opts)
		if err != nil {
			continue
		}
		for _, t := range toks {
			if t.Kind == token.Punctuation && t.Len() != 1 {
				failures++
			}
		}
	}
	return failures
}

// syntheticSource deterministically derives a small Rust-shaped source
// snippet from round index i, so proptest rounds vary without calling
// into any source of real randomness.
func syntheticSource(i int) string {
	forms := []string{
		"fn f() {}",
		"let x = 1 + 2;",
		"// line comment\nfn g() {}",
		"/// outer doc\nfn h() {}",
		"let s = \"hi\\n\";",
		"let r = r#\"raw\"#;",
		"'a: loop { break 'a; }",
		"let n = 0x1Fu32;",
		"let f = 1.5e10f64;",
		"struct S<'a> { x: &'a str }",
	}
	return forms[i%len(forms)]
}

// compareCommand and declCompareCommand are registered so the CLI's
// help text documents the comparison workflows a full test harness
// would run, but comparison against a reference compiler lexer or a
// declarative grammar oracle is explicitly out of scope: both exit 1
// describing the external collaborator they need.
type compareCommand struct {
	Path string `arg:"" optional:"" help:"Source file to compare against a reference lexer."`
}

func (c *compareCommand) Run() error {
	fmt.Fprintln(os.Stderr, "compare: requires an external reference-compiler lexer; not implemented here")
	return fmt.Errorf("no reference lexer configured")
}

type declCompareCommand struct {
	Path string `arg:"" optional:"" help:"Source file to compare against a declarative grammar oracle."`
}

func (c *declCompareCommand) Run() error {
	fmt.Fprintln(os.Stderr, "decl-compare: requires an external declarative grammar oracle; not implemented here")
	return fmt.Errorf("no grammar oracle configured")
}
