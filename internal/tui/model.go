package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"insurance-advisor/internal/domain"
	"insurance-advisor/internal/service"
)

// AdvisorPort is the TUI-facing subset of the advisor service.
type AdvisorPort interface {
	Ask(question string) service.Answer
	Quote(productKey string, applicant domain.Applicant) (domain.Quote, error)
	AssessRisk(applicant domain.Applicant) domain.RiskResult
	Recommend(age int, situation domain.Situation, monthlyBudget float64) []service.Recommendation
	Products() []domain.Product
	Suggestions() []string
}

type message struct {
	fromUser bool
	text     string
}

// Model is the Bubble Tea model for the advisor chat.
// The transcript lives here only; the advisor itself keeps no history.
type Model struct {
	service     AdvisorPort
	input       textinput.Model
	viewport    viewport.Model
	transcript  []message
	suggestions []string
	header      string
	status      string
	ready       bool
}

// New creates a new TUI model instance.
func New(service AdvisorPort, header string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask a question, or /help"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	m := Model{service: service, input: ti, viewport: vp, header: header, status: "Loaded. Type /help for commands."}
	if service != nil {
		m.suggestions = service.Suggestions()
	}
	return m
}

// Init initializes the model (text input cursor blink).
func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles key and window events and updates the view state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		// account for frames around transcript and query boxes
		_, th := transcriptBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		totalHeaderLines := 2                                    // title + header
		totalFooterLines := 1                                    // status
		reserved := totalHeaderLines + totalFooterLines + qh + 1 // 1 spacer
		vh := msg.Height - reserved
		if vh < 3 {
			vh = 3
		}
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, vh-th)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		// Global quits
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		switch msg.String() {
		case "enter":
			q := strings.TrimSpace(m.input.Value())
			if q != "" {
				m.input.SetValue("")
				m.handle(q)
				m.refresh()
				return m, nil
			}
		case "pgup", "pgdown", "up", "down":
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			return m, cmd
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View renders the TUI layout and transcript.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	title := lipgloss.NewStyle().Bold(true).Render("Insurance Advisor")
	header := lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Render(m.header)
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	body := transcriptBoxStyle.Render(m.viewport.View())
	return title + "\n" + header + "\n" + body + "\n" + input + "\n" + status
}

func (m *Model) handle(input string) {
	if input == "/clear" {
		m.transcript = nil
		m.status = "History cleared."
		return
	}
	m.transcript = append(m.transcript, message{fromUser: true, text: input})
	reply, err := m.reply(input)
	if err != nil {
		m.status = "Error: " + err.Error()
		reply = errorStyle.Render(err.Error())
	} else {
		m.status = "Ready."
	}
	m.transcript = append(m.transcript, message{text: reply})
}

func (m *Model) reply(input string) (string, error) {
	if !strings.HasPrefix(input, "/") {
		return renderAnswer(m.service.Ask(input)), nil
	}
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "/help":
		return helpText, nil
	case "/products":
		return renderProducts(m.service.Products()), nil
	case "/suggest":
		n, err := suggestArgs(args, len(m.suggestions))
		if err != nil {
			return "", err
		}
		if n == 0 {
			return renderSuggestions(m.suggestions), nil
		}
		return renderAnswer(m.service.Ask(m.suggestions[n-1])), nil
	case "/quote":
		key, a, err := quoteArgs(args)
		if err != nil {
			return "", err
		}
		q, err := m.service.Quote(key, a)
		if errors.Is(err, domain.ErrProductNotFound) {
			return "", fmt.Errorf("unknown product %q; see /products", key)
		}
		if err != nil {
			return "", err
		}
		return renderQuote(q), nil
	case "/risk":
		a, err := riskArgs(args)
		if err != nil {
			return "", err
		}
		return renderRisk(m.service.AssessRisk(a)), nil
	case "/recommend":
		age, sit, budget, err := recommendArgs(args)
		if err != nil {
			return "", err
		}
		return renderRecommendations(m.service.Recommend(age, sit, budget), budget), nil
	default:
		return "", fmt.Errorf("unknown command %s; try /help", cmd)
	}
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		if len(m.suggestions) == 0 {
			return "No messages yet."
		}
		return "No messages yet. Try one of these, or /suggest <n>:\n" + renderSuggestions(m.suggestions)
	}
	var b strings.Builder
	for i, msg := range m.transcript {
		if i > 0 {
			b.WriteString("\n\n")
		}
		if msg.fromUser {
			b.WriteString(userStyle.Render("You: ") + msg.text)
		} else {
			b.WriteString(botStyle.Render("Advisor: ") + msg.text)
		}
	}
	return b.String()
}

var (
	transcriptBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	userStyle          = lipgloss.NewStyle().Foreground(lipgloss.Color("12")).Bold(true)
	botStyle           = lipgloss.NewStyle().Foreground(lipgloss.Color("13")).Bold(true)
	mutedStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	adviceStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	categoryStyles     = map[domain.RiskCategory]lipgloss.Style{
		domain.RiskLow:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		domain.RiskMedium: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		domain.RiskHigh:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	}
)

func renderAnswer(ans service.Answer) string {
	if !ans.Matched {
		return ans.Fallback
	}
	out := ans.Result.Answer + "\n" + mutedStyle.Render(fmt.Sprintf("(Confidence: %.0f%%)", ans.Result.Confidence*100))
	if len(ans.Related) > 0 {
		out += "\n" + mutedStyle.Render("Related: "+strings.Join(ans.Related, " | "))
	}
	return out
}

func renderQuote(q domain.Quote) string {
	out := fmt.Sprintf("%s\n  annual  %.2f\n  monthly %.2f\n  daily   %.2f", titleCase(q.ProductKey), q.Annual, q.Monthly, q.Daily)
	for _, tip := range q.Advice {
		out += "\n" + adviceStyle.Render("Tip: "+tip)
	}
	return out
}

func renderSuggestions(qs []string) string {
	if len(qs) == 0 {
		return "No suggested questions available."
	}
	var b strings.Builder
	for i, q := range qs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "  %d. %s", i+1, q)
	}
	return b.String()
}

func renderRisk(r domain.RiskResult) string {
	style := categoryStyles[r.Category]
	var b strings.Builder
	fmt.Fprintf(&b, "Risk %s, score %d\n", style.Render(string(r.Category)), r.Score)
	for _, f := range r.Factors {
		b.WriteString("  • " + f + "\n")
	}
	b.WriteString(r.Recommendation)
	return b.String()
}

func renderProducts(ps []domain.Product) string {
	var b strings.Builder
	for i, p := range ps {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s (%s), base %.2f\n  %s", titleCase(p.Key), p.Key, p.BasePremium, p.Description)
		if len(p.PricingFactors) > 0 {
			b.WriteString("\n  " + mutedStyle.Render("Pricing factors: "+strings.Join(p.PricingFactors, ", ")))
		}
	}
	return b.String()
}

func renderRecommendations(recs []service.Recommendation, budget float64) string {
	if len(recs) == 0 {
		return fmt.Sprintf("No product fits a monthly budget of %.2f.", budget)
	}
	var b strings.Builder
	for i, r := range recs {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s: %.2f/month, %.0f/year, priority %s", titleCase(r.Product.Key), r.Quote.Monthly, r.Quote.Annual, r.Priority)
	}
	return b.String()
}

// titleCase turns "life_insurance" into "Life Insurance".
// A Caser keeps state, so each call builds its own.
func titleCase(key string) string {
	words := strings.Fields(strings.ReplaceAll(key, "_", " "))
	return cases.Title(language.Und).String(strings.Join(words, " "))
}
