// Package transcript parses console transcripts, used as tests.
//
// # Basic syntax
//
// A transcript is a series of lines entered after a prompt, each group
// followed by what the console printed in response:
//
//	>>> x = 2
//	>>> x + 1
//	3
//	>>> for i in range(2):
//	...     print(i)
//	...
//	0
//	1
//
// A line starting with a prompt (as defined by [PromptPattern]) is an input
// line. An interaction starts with a primary prompt line and extends over the
// continuation prompt lines directly following it. The other lines up to the
// next primary prompt line are output. A prompt may lose its trailing space
// when the line is otherwise empty, as editors commonly strip it.
//
// # Headings and sessions
//
// Headings of the form "# h1 #", "## h2 ##" and "### h3 ###" split a
// transcript into multiple sessions and are used to name them. A file a.pyts
// with the headings "# foo #" and "## 1 ##" contains the sessions a.pyts,
// a.pyts/foo and a.pyts/foo/1. Each session starts with a fresh console.
//
// Empty lines at the end of an output are ignored, so interactions can be
// separated by empty lines. Other empty lines are kept intact.
//
// # Comments and directives
//
// A line starting with "// " or consisting of 2 or more "/"s and nothing else
// is a comment. Comments are ignored and can appear anywhere, except that they
// can't interrupt multi-line input.
//
// A line starting with "//" but is not a comment is a directive. Directives can
// only appear at the beginning of a session, possibly after other directives,
// comments or empty lines. Directives propagate to lower-level sessions.
package transcript

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"regexp"
	"strings"
)

// Extension of transcript files.
const Ext = ".pyts"

// Prompts.
const (
	PrimaryPrompt      = ">>> "
	ContinuationPrompt = "... "
)

// Node is the result of parsing transcripts. It can represent a .pyts file or
// a section within one started by a heading.
type Node struct {
	Name         string
	Directives   []string
	Interactions []Interaction
	Children     []*Node
}

// Session is a leaf of a Node tree, with the directives of its ancestors.
type Session struct {
	Name         string
	Directives   []string
	Interactions []Interaction
}

// Sessions flattens the tree rooted at n. Nodes without interactions are
// skipped.
func (n *Node) Sessions() []Session {
	var sessions []Session
	var walk func(n *Node, name string, directives []string)
	walk = func(n *Node, name string, directives []string) {
		directives = append(directives[:len(directives):len(directives)], n.Directives...)
		if len(n.Interactions) > 0 {
			sessions = append(sessions, Session{name, directives, n.Interactions})
		}
		for _, child := range n.Children {
			walk(child, name+"/"+child.Name, directives)
		}
	}
	walk(n, n.Name, nil)
	return sessions
}

// ParseFromFS scans fsys recursively for .pyts files, and parses them.
func ParseFromFS(fsys fs.FS) ([]*Node, error) {
	var nodes []*Node
	err := fs.WalkDir(fsys, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(name) != Ext {
			return nil
		}
		file, err := fsys.Open(name)
		if err != nil {
			return err
		}
		defer file.Close()
		node, err := Parse(name, file)
		if err != nil {
			return err
		}
		nodes = append(nodes, node)
		return nil
	})
	return nodes, err
}

// Parse parses a single transcript file.
func Parse(name string, r io.Reader) (*Node, error) {
	lines, err := readAllLines(r)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return parseNode(name, fileLines{name, lines, 1})
}

func readAllLines(r io.Reader) ([]string, error) {
	scanner := bufio.NewScanner(r)
	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	return lines, scanner.Err()
}

// Represents a range of lines from a file.
type fileLines struct {
	filename    string
	lines       []string
	startLineno int // line number of lines[0]
}

func (fl *fileLines) describeLine(i int) string {
	return fmt.Sprintf("%s:%d", fl.filename, i+fl.startLineno)
}

func (fl *fileLines) slice(i, j int) fileLines {
	return fileLines{fl.filename, fl.lines[i:j], fl.startLineno + i}
}

func parseNode(name string, fl fileLines) (*Node, error) {
	// Path from root to current node. Index corresponds to level, so
	// nodeStack[0] is the root and nodeStack[1] is the currently active h1.
	nodeStack := []*Node{{Name: name}}

	for i := 0; i < len(fl.lines); {
		if title, level, ok := parseHeading(fl.lines[i]); ok {
			if level > len(nodeStack) {
				return nil, fmt.Errorf("%s: h%d before h%d", fl.describeLine(i), level, level-1)
			}
			i++
			node := &Node{Name: title}
			parent := nodeStack[level-1]
			parent.Children = append(parent.Children, node)
			nodeStack = append(nodeStack[:level], node)
		}
		var j int
		for j = i; j < len(fl.lines); j++ {
			if _, _, isHeading := parseHeading(fl.lines[j]); isHeading {
				break
			}
		}
		err := parseSession(nodeStack[len(nodeStack)-1], fl.slice(i, j))
		if err != nil {
			return nil, err
		}
		i = j
	}
	return nodeStack[0], nil
}

func parseHeading(line string) (title string, level int, ok bool) {
	for level := 1; level <= 3; level++ {
		marks := strings.Repeat("#", level)
		if strings.HasPrefix(line, marks+" ") && strings.HasSuffix(line, " "+marks) && len(line) > 2*level+2 {
			return line[level+1 : len(line)-level-1], level, true
		}
	}
	return "", 0, false
}

// Interaction is one unit of input, entered line by line, followed by the
// console's output.
type Interaction struct {
	// Input lines, without prompts. The first one was entered after the
	// primary prompt, the others after the continuation prompt.
	Lines []string
	// Output lines.
	Output []string
}

// Text returns the input lines with their prompts, followed by the output
// lines, as they appear in the transcript.
func (in Interaction) Text() []string {
	text := make([]string, 0, len(in.Lines)+len(in.Output))
	for i, line := range in.Lines {
		prompt := ContinuationPrompt
		if i == 0 {
			prompt = PrimaryPrompt
		}
		text = append(text, prompt+line)
	}
	return append(text, in.Output...)
}

// PromptPattern matches prompts, used to determine which lines are input.
var PromptPattern = regexp.MustCompile(`^(>>>|\.\.\.)( |$)`)

var (
	errFirstLineDoesntHavePrompt            = errors.New("first non-comment line of a session doesn't have a primary prompt")
	errDirectiveOnlyAllowedAtStartOfSession = errors.New("directive only allowed at start of a session")
	errContinuationAfterOutput              = errors.New("continuation line after output")
)

// Splits an input line into its prompt and its text.
func parseInput(line string) (prompt, text string, ok bool) {
	m := PromptPattern.FindString(line)
	if m == "" {
		return "", "", false
	}
	return strings.TrimSpace(m) + " ", line[len(m):], true
}

func parseSession(n *Node, fl fileLines) error {
	lines := fl.lines
	var directives []string
	start := 0
	for ; start < len(lines); start++ {
		if lines[start] == "" || isComment(lines[start]) {
			// do nothing
		} else if directive, ok := parseDirective(lines[start]); ok {
			directives = append(directives, directive)
		} else {
			break
		}
	}
	if start < len(lines) {
		if prompt, _, _ := parseInput(lines[start]); prompt != PrimaryPrompt {
			return fmt.Errorf("%s: %w", fl.describeLine(start), errFirstLineDoesntHavePrompt)
		}
	}
	for len(lines) > start && (lines[len(lines)-1] == "" || isComment(lines[len(lines)-1])) {
		lines = lines[:len(lines)-1]
	}

	var interactions []Interaction
	for i := start; i < len(lines); {
		_, text, _ := parseInput(lines[i])
		in := Interaction{Lines: []string{text}}
		i++
		for i < len(lines) {
			prompt, text, ok := parseInput(lines[i])
			if !ok || prompt != ContinuationPrompt {
				break
			}
			in.Lines = append(in.Lines, text)
			i++
		}
		for i < len(lines) {
			prompt, _, ok := parseInput(lines[i])
			if ok && prompt == PrimaryPrompt {
				break
			} else if ok {
				return fmt.Errorf("%s: %w", fl.describeLine(i), errContinuationAfterOutput)
			}
			if _, ok := parseDirective(lines[i]); ok {
				return fmt.Errorf("%s: %w", fl.describeLine(i), errDirectiveOnlyAllowedAtStartOfSession)
			} else if !isComment(lines[i]) {
				in.Output = append(in.Output, lines[i])
			}
			i++
		}
		for len(in.Output) > 0 && in.Output[len(in.Output)-1] == "" {
			in.Output = in.Output[:len(in.Output)-1]
		}
		interactions = append(interactions, in)
	}
	n.Directives = directives
	n.Interactions = interactions
	return nil
}

var slashOnlyCommentPattern = regexp.MustCompile(`^///*$`)

func isComment(line string) bool {
	return strings.HasPrefix(line, "// ") || slashOnlyCommentPattern.MatchString(line)
}

func parseDirective(line string) (string, bool) {
	if strings.HasPrefix(line, "//") && !isComment(line) {
		return line[2:], true
	}
	return "", false
}
