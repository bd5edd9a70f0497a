package cli

import (
	"fmt"
	"math/big"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	perrors "github.com/matzehuels/permrank/pkg/errors"
	"github.com/matzehuels/permrank/pkg/scheme"
)

// List styles
var (
	listDimStyle   = lipgloss.NewStyle().Foreground(colorDim)
	listErrorStyle = lipgloss.NewStyle().Foreground(colorRed)
)

// browseCommand creates the interactive browse command.
func (c *CLI) browseCommand() *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Page through ranks and their permutations interactively",
		Long: `Page through a scheme's ranks. Type a rank and press enter to jump to it;
ranks may be arbitrarily large.`,
		Example: `  permrank browse --alphabet abcdefghijklmnopqrstuvwxyz
  permrank browse --scheme myrvold --alphabet abcd`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := flags.options(c.Config)
			if err := opts.Validate(); err != nil {
				return err
			}
			m, err := newBrowseModel(opts.SchemeImpl(), opts.Symbols(), opts.K)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context()), tea.WithAltScreen()).Run()
			return err
		},
	}
	flags.bindAlphabet(cmd)
	cmd.Flags().StringVarP(&flags.scheme, "scheme", "s", "", "ranking scheme (see `permrank schemes`)")
	cmd.Flags().IntVarP(&flags.k, "length", "k", 0, "permutation length (default: alphabet size)")
	return cmd
}

// =============================================================================
// browseModel - Interactive rank browser
// =============================================================================

// browseModel is the bubbletea model for paging through ranks. Ranks are
// *big.Int values that are never mutated after assignment, so copies of the
// model share them safely.
type browseModel struct {
	scheme   scheme.Scheme
	alphabet scheme.Alphabet
	k        int

	first, last *big.Int // inclusive rank range
	cursor      *big.Int
	offset      *big.Int // rank of the top row
	height      int

	input string // digits typed for a jump
	err   error
}

func newBrowseModel(s scheme.Scheme, alphabet scheme.Alphabet, k int) (browseModel, error) {
	count, err := s.Count(alphabet.Size(), k)
	if err != nil {
		return browseModel{}, err
	}
	if count.Sign() == 0 {
		return browseModel{}, perrors.New(perrors.ErrCodeInvalidInput, "nothing to browse: %s has no ranks for k=%d", s.Name(), k)
	}
	first := s.First()
	last := new(big.Int).Add(first, count)
	last.Sub(last, big.NewInt(1))
	return browseModel{
		scheme:   s,
		alphabet: alphabet,
		k:        k,
		first:    first,
		last:     last,
		cursor:   first,
		offset:   first,
		height:   15,
	}, nil
}

func (m browseModel) Init() tea.Cmd {
	return nil
}

func (m browseModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		key := msg.String()
		switch key {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveBy(-1)
		case "down", "j":
			m = m.moveBy(1)
		case "pgup", "b":
			m = m.moveBy(-int64(m.height))
		case "pgdown", " ", "f":
			m = m.moveBy(int64(m.height))
		case "home", "g":
			m = m.moveTo(m.first)
		case "end", "G":
			m = m.moveTo(m.last)
		case "backspace":
			if m.input != "" {
				m.input = m.input[:len(m.input)-1]
			}
		case "enter":
			if m.input == "" {
				break
			}
			target, _ := new(big.Int).SetString(m.input, 10)
			m.input = ""
			if target.Cmp(m.first) < 0 || target.Cmp(m.last) > 0 {
				m.err = perrors.New(perrors.ErrCodeRangeViolation, "rank %s out of range [%s, %s]", target, m.first, m.last)
				break
			}
			m = m.moveTo(target)
		default:
			if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
				m.input += key
			}
		}
	case tea.WindowSizeMsg:
		m.height = max(msg.Height-8, 5)
		m = m.moveTo(m.cursor)
	}
	return m, nil
}

// moveBy moves the cursor by delta ranks, clamped to the valid range.
func (m browseModel) moveBy(delta int64) browseModel {
	return m.moveTo(new(big.Int).Add(m.cursor, big.NewInt(delta)))
}

// moveTo places the cursor on rank and scrolls so it stays visible.
func (m browseModel) moveTo(rank *big.Int) browseModel {
	m.err = nil
	switch {
	case rank.Cmp(m.first) < 0:
		rank = m.first
	case rank.Cmp(m.last) > 0:
		rank = m.last
	}
	m.cursor = rank

	bottom := new(big.Int).Add(m.offset, big.NewInt(int64(m.height-1)))
	switch {
	case rank.Cmp(m.offset) < 0:
		m.offset = rank
	case rank.Cmp(bottom) > 0:
		m.offset = new(big.Int).Sub(rank, big.NewInt(int64(m.height-1)))
	}
	return m
}

// rows returns the visible ranks with their words.
func (m browseModel) rows() [][]string {
	var rows [][]string
	one := big.NewInt(1)
	r := new(big.Int).Set(m.offset)
	for i := 0; i < m.height && r.Cmp(m.last) <= 0; i++ {
		p, err := m.scheme.Unrank(r, m.alphabet.Size(), m.k)
		var word string
		if err != nil {
			word = "error: " + perrors.UserMessage(err)
		} else {
			word = m.alphabet.Format(p)
		}
		cursor := "  "
		if r.Cmp(m.cursor) == 0 {
			cursor = "▸ "
		}
		rows = append(rows, []string{cursor, r.String(), word})
		r.Add(r, one)
	}
	return rows
}

func (m browseModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render(fmt.Sprintf("%s ranks over %s", m.scheme.Name(), m.alphabet)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ move  pgup/pgdn page  g/G first/last  0-9 ⏎ jump  q quit"))
	b.WriteString("\n\n")

	rows := m.rows()
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Rank", "Permutation").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			if row < len(rows) && rows[row][0] != "  " {
				return lipgloss.NewStyle().Foreground(colorGreen).Bold(true)
			}
			if col == 1 {
				return lipgloss.NewStyle().Foreground(colorGray)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%s/%s]", m.cursor, m.last)))
	if m.input != "" {
		b.WriteString("  " + StyleNumber.Render("goto "+m.input))
	}
	if m.err != nil {
		b.WriteString("\n  " + listErrorStyle.Render(perrors.UserMessage(m.err)))
	}
	return b.String()
}
