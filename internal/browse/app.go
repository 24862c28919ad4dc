// Package browse is the terminal catalog browser. Key presses become
// session events; every URL write reloads the item list.
package browse

import (
	"context"
	"net/url"
	"time"

	"paporium/internal/core/filter"
	"paporium/internal/platform/logger"
	"paporium/internal/services/catalog/domain"
	"paporium/internal/services/catalog/session"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// Catalog is what the browser reads through
type Catalog interface {
	domain.ServicePort
	Load(ctx context.Context) error
}

// Options configures the browser
type Options struct {
	// Start is the initial query string, as copied from a shared link
	Start url.Values
	// Quiet is the text debounce period
	Quiet time.Duration
	// Timeout bounds each catalog read
	Timeout time.Duration
}

type (
	datasetLoaded struct {
		def filter.SearchFilter
		err error
	}
	paramsChanged struct{ values url.Values }
	// query ids only grow; a load whose id is not the latest is dropped
	itemsLoaded struct {
		query uint64
		page  domain.ItemPage
		err   error
	}
	detailLoaded struct {
		query  uint64
		detail domain.ItemDetail
		err    error
	}
)

// App is the root bubbletea model
type App struct {
	catalog Catalog
	opts    Options
	log     *logger.Logger

	sess    *session.Session
	changes chan url.Values

	input   textinput.Model
	spinner spinner.Model
	typing  bool
	loading bool
	status  string
	err     error
	width   int
	height  int
	cursor  int

	// facet bar: which facet is focused and which of its values
	facet      int
	facetValue int

	itemsQuery  uint64
	detailQuery uint64

	def    filter.SearchFilter
	page   domain.ItemPage
	detail *domain.ItemDetail
}

// New returns the browser model; the dataset loads on Init
func New(c Catalog, opts Options) App {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	ti := textinput.New()
	ti.Placeholder = "item name or ids, e.g. 501,502"
	ti.CharLimit = 200
	ti.Width = 40

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return App{
		catalog: c,
		opts:    opts,
		log:     logger.Named("browse"),
		changes: make(chan url.Values, 16),
		input:   ti,
		spinner: s,
		loading: true,
		status:  "loading dataset",
	}
}

// Init loads the dataset
func (a App) Init() tea.Cmd {
	return tea.Batch(a.spinner.Tick, a.loadDataset())
}

func (a App) loadDataset() tea.Cmd {
	c := a.catalog
	return func() tea.Msg {
		ctx := context.Background()
		if err := c.Load(ctx); err != nil {
			return datasetLoaded{err: err}
		}
		v, err := c.Filter(ctx, nil)
		return datasetLoaded{def: v.Filter, err: err}
	}
}

// publish hands a URL write to the update loop, dropping the oldest
// pending write when the loop lags
func publish(ch chan url.Values, v url.Values) {
	for {
		select {
		case ch <- v:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}

// waitChange blocks until the session writes the URL
func waitChange(ch chan url.Values) tea.Cmd {
	return func() tea.Msg { return paramsChanged{values: <-ch} }
}

func (a App) sessionID() string {
	if a.sess == nil {
		return ""
	}
	return a.sess.ID.String()
}

// fetch starts a new item query; earlier ones in flight become stale
func (a *App) fetch(values url.Values) tea.Cmd {
	a.itemsQuery++
	q, c, timeout, sid := a.itemsQuery, a.catalog, a.opts.Timeout, a.sessionID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(logger.WithSession(context.Background(), sid), timeout)
		defer cancel()
		p, err := c.Items(ctx, values)
		return itemsLoaded{query: q, page: p, err: err}
	}
}

func (a *App) fetchDetail(id int64, values url.Values) tea.Cmd {
	a.detailQuery++
	q, c, timeout, sid := a.detailQuery, a.catalog, a.opts.Timeout, a.sessionID()
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(logger.WithSession(context.Background(), sid), timeout)
		defer cancel()
		d, err := c.Item(ctx, id, values)
		return detailLoaded{query: q, detail: d, err: err}
	}
}

// Update handles messages and returns the updated model and any commands
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width, a.height = msg.Width, msg.Height
		return a, nil

	case spinner.TickMsg:
		if !a.loading {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case datasetLoaded:
		if msg.err != nil {
			a.loading, a.status, a.err = false, "", msg.err
			return a, nil
		}
		ch := a.changes
		a.def = msg.def
		a.sess = session.New(msg.def,
			session.WithQuiet(a.opts.Quiet),
			session.WithLogger(a.log),
			session.OnChange(func(v url.Values) { publish(ch, v) }),
		)
		f := a.sess.Navigate(a.opts.Start)
		a.input.SetValue(f.Item)
		a.status = "loading items"
		fetch := a.fetch(a.sess.Params())
		return a, tea.Batch(fetch, waitChange(ch))

	case paramsChanged:
		a.loading, a.status = true, "loading items"
		fetch := a.fetch(msg.values)
		return a, tea.Batch(fetch, waitChange(a.changes), a.spinner.Tick)

	case itemsLoaded:
		if msg.query != a.itemsQuery {
			a.log.Debug().Uint64("query", msg.query).Uint64("latest", a.itemsQuery).Msg("stale item list dropped")
			return a, nil
		}
		a.loading, a.status = false, ""
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		a.err = nil
		a.page = msg.page
		a.cursor = min(a.cursor, max(len(a.page.List.Items)-1, 0))
		return a, nil

	case detailLoaded:
		if msg.query != a.detailQuery {
			return a, nil
		}
		a.loading, a.status = false, ""
		if msg.err != nil {
			a.err = msg.err
			return a, nil
		}
		d := msg.detail
		a.detail = &d
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}
	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		a.close()
		return a, tea.Quit
	}
	if a.sess == nil {
		if msg.String() == "q" {
			return a, tea.Quit
		}
		return a, nil
	}
	if a.typing {
		return a.handleTyping(msg)
	}
	if a.detail != nil && (msg.Type == tea.KeyEsc || msg.Type == tea.KeyBackspace) {
		a.detail = nil
		return a, nil
	}

	switch msg.String() {
	case "q":
		a.close()
		return a, tea.Quit
	case "/":
		a.typing = true
		return a, a.input.Focus()
	case "up", "k":
		a.cursor = max(a.cursor-1, 0)
	case "down", "j":
		a.cursor = min(a.cursor+1, max(len(a.page.List.Items)-1, 0))
	case "enter":
		if a.cursor < len(a.page.List.Items) {
			a.loading, a.status = true, "loading detail"
			fetch := a.fetchDetail(a.page.List.Items[a.cursor].ID, a.sess.Params())
			return a, tea.Batch(fetch, a.spinner.Tick)
		}
	case "f", "tab":
		a.facet = (a.facet + 1) % len(filter.FacetNames)
		a.facetValue = 0
	case "[":
		a.facetValue = max(a.facetValue-1, 0)
	case "]":
		if n := len(a.focusedFacet()); n > 0 {
			a.facetValue = min(a.facetValue+1, n-1)
		}
	case "t", " ":
		return a.toggleFacetValue()
	case "o":
		return a.apply(session.Event{Kind: session.KindOvercharge, Value: string(nextOvercharge(a.sess.Effective().Overcharge))})
	case "p":
		next := filter.PricingOCDC
		if a.sess.Effective().Pricing == filter.PricingOCDC {
			next = filter.PricingDefault
		}
		return a.apply(session.Event{Kind: session.KindPricing, Value: string(next)})
	case "n", "right":
		return a.apply(session.Event{Kind: session.KindPage, Page: a.page.Page.Page + 1})
	case "b", "left":
		return a.apply(session.Event{Kind: session.KindPage, Page: max(a.page.Page.Page-1, 1)})
	case "a":
		return a.apply(session.Event{Kind: session.KindSelectAll})
	case "c":
		return a.apply(session.Event{Kind: session.KindClearAll})
	case "r":
		a.input.SetValue("")
		return a.apply(session.Event{Kind: session.KindReset})
	}
	return a, nil
}

func (a App) handleTyping(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		a.typing = false
		a.input.Blur()
		a.sess.Flush()
		return a, nil
	case tea.KeyEsc:
		a.typing = false
		a.input.Blur()
		return a, nil
	}
	before := a.input.Value()
	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	if v := a.input.Value(); v != before {
		a.sess.Type(filter.FieldItem, v)
	}
	return a, cmd
}

func (a App) focusedName() filter.FacetName {
	return filter.FacetNames[a.facet%len(filter.FacetNames)]
}

// focusedFacet is the focused facet of the effective filter
func (a App) focusedFacet() filter.FacetSet {
	if a.sess == nil {
		return nil
	}
	return a.sess.Effective().Facet(a.focusedName())
}

// toggleFacetValue flips the value under the facet cursor
func (a App) toggleFacetValue() (tea.Model, tea.Cmd) {
	values := a.focusedFacet()
	if len(values) == 0 {
		return a, nil
	}
	v := values[min(a.facetValue, len(values)-1)]
	return a.apply(session.Toggle(a.focusedName(), v.ID, !v.IsChecked()))
}

func (a App) apply(events ...session.Event) (tea.Model, tea.Cmd) {
	if _, err := a.sess.Apply(events...); err != nil {
		a.err = err
	}
	return a, nil
}

func (a App) close() {
	if a.sess != nil {
		a.sess.Close()
	}
}

func nextOvercharge(m filter.OverchargeMode) filter.OverchargeMode {
	switch m {
	case filter.OverchargeAny:
		return filter.OverchargeOnly
	case filter.OverchargeOnly:
		return filter.OverchargeExclude
	}
	return filter.OverchargeAny
}
