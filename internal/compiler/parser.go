package compiler

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
	"github.com/aretw0/turtle/pkg/domain"
	"github.com/aretw0/turtle/pkg/ports"
)

var (
	// ErrMissingOperand is returned for a PLACE line without its X,Y,FACING token.
	ErrMissingOperand = errors.New("PLACE requires an X,Y,FACING operand")
	// ErrNoBatchLoader is returned when a batch reference is parsed without a loader.
	ErrNoBatchLoader = errors.New("no batch loader configured")
)

// A command line is a verb followed by whitespace separated tokens.
type commandLine struct {
	Verb string   `parser:"@Word"`
	Args []string `parser:"@Word*"`
}

// The PLACE operand is X,Y,FACING. Trailing fields are accepted and ignored.
// X and Y are captured as text so that base-10 conversion and range errors stay ours.
type placeOperand struct {
	X      string   `parser:"@Int Comma"`
	Y      string   `parser:"@Int Comma"`
	Facing string   `parser:"@(Word | Int)"`
	Extra  []string `parser:"(Comma @(Word | Int)?)*"`
}

var (
	lineLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Word", Pattern: `\S+`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	operandLexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Int", Pattern: `[-+]?\d+`},
		{Name: "Comma", Pattern: `,`},
		{Name: "Word", Pattern: `[^,\s]+`},
	})

	lineGrammar = participle.MustBuild[commandLine](
		participle.Lexer(lineLexer),
		participle.Elide("Whitespace"),
	)

	operandGrammar = participle.MustBuild[placeOperand](
		participle.Lexer(operandLexer),
	)
)

// Parser turns command text into Commands. It performs no bounds validation.
type Parser struct {
	suffix string
	loader ports.BatchLoader
}

// Option configures a Parser.
type Option func(*Parser)

// WithBatchSuffix sets the suffix that marks an input as a batch-file reference.
// An empty suffix disables batch mode.
func WithBatchSuffix(suffix string) Option {
	return func(p *Parser) {
		p.suffix = suffix
	}
}

// WithBatchLoader sets the collaborator that reads batch files.
func WithBatchLoader(l ports.BatchLoader) Option {
	return func(p *Parser) {
		p.loader = l
	}
}

// NewParser creates a parser using the default ".txt" batch suffix.
func NewParser(opts ...Option) *Parser {
	p := &Parser{suffix: domain.DefaultBatchSuffix}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// IsBatchRef reports whether raw names a batch file (suffix match is case-insensitive).
func (p *Parser) IsBatchRef(raw string) bool {
	ref := strings.TrimSpace(raw)
	if p.suffix == "" || len(ref) < len(p.suffix) {
		return false
	}
	return strings.EqualFold(ref[len(ref)-len(p.suffix):], p.suffix)
}

// Parse turns one input into commands. A batch reference expands to one command per
// line of the referenced file, in file order; anything else is a single command line.
//
// Parse errors are returned together with the commands: lines that failed are kept
// as ActionUnknown so that the result always has one command per line.
func (p *Parser) Parse(ctx context.Context, raw string) ([]domain.Command, error) {
	if !p.IsBatchRef(raw) {
		cmd, err := p.ParseLine(raw)
		return []domain.Command{cmd}, err
	}

	ref := strings.TrimSpace(raw)
	if p.loader == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoBatchLoader, ref)
	}
	lines, err := p.loader.Load(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to load batch %s: %w", ref, err)
	}
	return p.ParseLines(ref, lines)
}

// ParseLines parses each line independently. The returned slice always has len(lines)
// entries; every failing line contributes a *domain.ParseError to the joined error.
//
// When source is set, file content is not carried in the results: commands have no
// Raw text and parse errors point at source and line only.
func (p *Parser) ParseLines(source string, lines []string) ([]domain.Command, error) {
	cmds := make([]domain.Command, 0, len(lines))
	var errs []error
	for i, line := range lines {
		cmd, err := p.ParseLine(line)
		if err != nil {
			var pe *domain.ParseError
			if errors.As(err, &pe) {
				pe.Line = i + 1
				if source != "" {
					pe.Source = source
					pe.Input = ""
				}
			}
			errs = append(errs, err)
		}
		if source != "" {
			cmd.Raw = ""
		}
		cmds = append(cmds, cmd)
	}
	return cmds, errors.Join(errs...)
}

// ParseLine parses a single command line.
// Unrecognized verbs and blank lines yield ActionUnknown without error.
func (p *Parser) ParseLine(line string) (domain.Command, error) {
	raw := strings.TrimSpace(line)
	if raw == "" {
		return domain.Unknown(raw), nil
	}

	parsed, err := lineGrammar.ParseString("", raw)
	if err != nil {
		// The line lexer accepts any non-empty text, so this is unreachable in practice.
		return domain.Unknown(raw), nil
	}

	action := domain.ParseAction(parsed.Verb)
	switch action {
	case domain.ActionUnknown:
		return domain.Unknown(raw), nil
	case domain.ActionPlace:
		target, err := parsePlace(parsed.Args)
		if err != nil {
			return domain.Unknown(raw), &domain.ParseError{Input: raw, Err: err}
		}
		return domain.Command{Action: action, Target: target, Raw: raw}, nil
	default:
		return domain.Command{Action: action, Raw: raw}, nil
	}
}

func parsePlace(args []string) (domain.Position, error) {
	if len(args) == 0 {
		return domain.Position{}, ErrMissingOperand
	}

	op, err := operandGrammar.ParseString("", args[0])
	if err != nil {
		return domain.Position{}, fmt.Errorf("invalid operand %q: %w", args[0], err)
	}

	x, err := parseInt(op.X)
	if err != nil {
		return domain.Position{}, fmt.Errorf("invalid X %q: %w", op.X, err)
	}
	y, err := parseInt(op.Y)
	if err != nil {
		return domain.Position{}, fmt.Errorf("invalid Y %q: %w", op.Y, err)
	}

	// An unknown facing is not an error: it stays undefined and the
	// state machine decides what that means.
	return domain.NewPosition(x, y, domain.ParseFacing(op.Facing)), nil
}

// parseInt accepts integers of any magnitude. Values beyond int saturate,
// which no grid contains, so the validator rejects them.
func parseInt(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if errors.Is(err, strconv.ErrRange) {
		if strings.HasPrefix(s, "-") {
			return math.MinInt, nil
		}
		return math.MaxInt, nil
	}
	return n, err
}
