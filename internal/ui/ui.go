package ui

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/playsv/playsv/internal/channel"
	"github.com/playsv/playsv/internal/library"
	"github.com/playsv/playsv/internal/models"
	"github.com/playsv/playsv/internal/player"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LibraryView ViewState = iota
	PlaylistView
	ConfirmClearView
)

// Model represents the TUI application state.
type Model struct {
	ctx        context.Context
	view       ViewState
	controller *player.Controller
	catalog    *library.Client

	width  int
	height int

	libraryList  list.Model
	playlistList list.Model

	connState  channel.ConnState
	nowPlaying string
	note       string
	paused     bool
	volume     int

	events chan tea.Msg
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies. Channel
// callbacks feed the events channel; the model drains it between updates.
// volume is the starting session volume, clamped to 0-100.
func NewModel(ctx context.Context, controller *player.Controller, catalog *library.Client, events chan tea.Msg, volume int) *Model {
	if volume < 0 || volume > 100 {
		volume = 100
	}
	libraryList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	libraryList.Title = "Video Library"
	libraryList.Filter = substringFilter

	playlistList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	playlistList.Title = "Playlist"
	playlistList.SetFilteringEnabled(false)

	return &Model{
		ctx:          ctx,
		view:         LibraryView,
		controller:   controller,
		catalog:      catalog,
		libraryList:  libraryList,
		playlistList: playlistList,
		connState:    channel.StateDisconnected,
		volume:       volume,
		events:       events,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init loads the catalog and starts draining channel events.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadCatalog(), m.waitForEvent())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.libraryList.SetSize(msg.Width-4, msg.Height-8)
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case LibraryView:
			return m.handleLibraryKeys(msg)
		case PlaylistView:
			return m.handlePlaylistKeys(msg)
		case ConfirmClearView:
			return m.handleConfirmKeys(msg)
		}

	case catalogLoadedMsg:
		m.controller.SetCatalog(msg.videos)
		items := make([]list.Item, len(msg.videos))
		for i, video := range msg.videos {
			items[i] = videoItem{video: video}
		}
		m.libraryList.SetItems(items)
		return m, nil

	case ConnStateMsg:
		m.connState = msg.State
		return m, m.waitForEvent()

	case NowPlayingMsg:
		m.nowPlaying = msg.Title
		return m, m.waitForEvent()

	case NotificationMsg:
		m.note = fmt.Sprintf("%s: %s", msg.Notification.Title, msg.Notification.Body)
		return m, m.waitForEvent()

	case VideosUpdatedMsg:
		return m, tea.Batch(m.loadCatalog(), m.waitForEvent())

	case statusNoteMsg:
		m.note = msg.note
		m.refreshPlaylist()
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	var body string
	switch m.view {
	case LibraryView:
		body = m.renderLibrary()
	case PlaylistView:
		body = m.renderPlaylist()
	case ConfirmClearView:
		body = m.renderConfirm()
	}

	return fmt.Sprintf("%s\n%s", body, m.renderStatusBar())
}

func (m *Model) handleLibraryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the list filter is open, every key belongs to it
	if m.libraryList.FilterState() == list.Filtering {
		var cmd tea.Cmd
		m.libraryList, cmd = m.libraryList.Update(msg)
		return m, cmd
	}

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab):
		m.view = PlaylistView
		m.refreshPlaylist()
		return m, nil
	case key.Matches(msg, m.keys.add):
		if video, ok := m.selectedVideo(); ok {
			if m.controller.Add(video) {
				m.note = fmt.Sprintf("added %q", video.Title)
			} else {
				m.note = fmt.Sprintf("%q is already in the playlist", video.Title)
			}
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if video, ok := m.selectedVideo(); ok {
			return m, m.sendCommand(func() error { return m.controller.Play(video) })
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.libraryList, cmd = m.libraryList.Update(msg)
	return m, cmd
}

func (m *Model) handlePlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.tab), key.Matches(msg, m.keys.back):
		m.view = LibraryView
		return m, nil
	case key.Matches(msg, m.keys.remove):
		if m.controller.RemoveAt(m.playlistList.Index()) {
			m.refreshPlaylist()
		}
		return m, nil
	case key.Matches(msg, m.keys.clear):
		if len(m.controller.Playlist()) > 0 {
			m.view = ConfirmClearView
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		index := m.playlistList.Index()
		return m, m.sendCommand(func() error { return m.controller.PlayIndex(index) })
	case key.Matches(msg, m.keys.next):
		return m, m.sendCommand(m.controller.Next)
	case key.Matches(msg, m.keys.previous):
		return m, m.sendCommand(m.controller.Previous)
	case key.Matches(msg, m.keys.pause):
		return m, m.togglePause()
	case key.Matches(msg, m.keys.stop):
		return m, m.sendCommand(m.controller.Stop)
	case key.Matches(msg, m.keys.volUp):
		return m, m.changeVolume(5)
	case key.Matches(msg, m.keys.volDown):
		return m, m.changeVolume(-5)
	case key.Matches(msg, m.keys.save):
		return m, m.savePlaylist()
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.yes):
		m.controller.Clear(true)
		m.refreshPlaylist()
		m.view = PlaylistView
		m.note = "playlist cleared"
		return m, nil
	case key.Matches(msg, m.keys.no), key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.quit):
		m.view = PlaylistView
		return m, nil
	}
	return m, nil
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case LibraryView:
		m.libraryList, cmd = m.libraryList.Update(msg)
	case PlaylistView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	}
	return m, cmd
}

func (m *Model) selectedVideo() (models.Video, bool) {
	selected := m.libraryList.SelectedItem()
	if selected == nil {
		return models.Video{}, false
	}
	item, ok := selected.(videoItem)
	return item.video, ok
}

// refreshPlaylist rebuilds the playlist items from controller state.
func (m *Model) refreshPlaylist() {
	playlist := m.controller.Playlist()
	cursor := m.controller.Cursor()

	items := make([]list.Item, len(playlist))
	for i, video := range playlist {
		items[i] = playlistEntryItem{position: i, current: i == cursor, video: video}
	}
	m.playlistList.SetItems(items)
}

func (m *Model) loadCatalog() tea.Cmd {
	return func() tea.Msg {
		return catalogLoadedMsg{videos: m.catalog.Videos(m.ctx)}
	}
}

// sendCommand runs a command send and reports drops in the status bar.
func (m *Model) sendCommand(send func() error) tea.Cmd {
	return func() tea.Msg {
		if err := send(); err != nil {
			return statusNoteMsg{note: fmt.Sprintf("command dropped: %v", err)}
		}
		return statusNoteMsg{note: ""}
	}
}

func (m *Model) togglePause() tea.Cmd {
	paused := m.paused
	m.paused = !paused
	if paused {
		return m.sendCommand(m.controller.Resume)
	}
	return m.sendCommand(m.controller.Pause)
}

// changeVolume nudges the session volume and pushes it to the player.
func (m *Model) changeVolume(delta int) tea.Cmd {
	m.volume += delta
	if m.volume < 0 {
		m.volume = 0
	}
	if m.volume > 100 {
		m.volume = 100
	}
	volume := m.volume
	return m.sendCommand(func() error { return m.controller.SetVolume(volume) })
}

func (m *Model) savePlaylist() tea.Cmd {
	playlist := m.controller.Playlist()
	return func() tea.Msg {
		if err := m.catalog.SavePlaylist(m.ctx, playlist); err != nil {
			return statusNoteMsg{note: fmt.Sprintf("save failed: %v", err)}
		}
		return statusNoteMsg{note: "playlist saved"}
	}
}

// waitForEvent re-arms the channel-event drain.
func (m *Model) waitForEvent() tea.Cmd {
	if m.events == nil {
		return nil
	}
	return func() tea.Msg {
		return <-m.events
	}
}

func (m *Model) renderLibrary() string {
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.add, m.keys.enter, m.keys.tab, m.keys.quit})
	return fmt.Sprintf("%s\n\n%s", m.libraryList.View(), helpView)
}

func (m *Model) renderPlaylist() string {
	helpView := m.help.ShortHelpView([]key.Binding{
		m.keys.enter, m.keys.remove, m.keys.clear, m.keys.save, m.keys.next, m.keys.previous, m.keys.tab,
	})
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderConfirm() string {
	title := styles.title.Render(fmt.Sprintf("Clear all %d playlist entries?", len(m.controller.Playlist())))
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n\n%s", title, helpView)
}

// renderStatusBar shows the connection state, the only externally observable
// channel status, plus now-playing info and transient notes.
func (m *Model) renderStatusBar() string {
	var status string
	switch m.connState {
	case channel.StateConnected:
		status = styles.ok.Render("● Connected")
	case channel.StateErrored:
		status = styles.err.Render("● Connection error")
	default:
		status = styles.warn.Render("● Disconnected")
	}

	bar := status
	if m.nowPlaying != "" {
		bar = fmt.Sprintf("%s  %s", bar, styles.title.Render("Now playing: "+m.nowPlaying))
	}
	if m.note != "" {
		bar = fmt.Sprintf("%s  %s", bar, styles.help.Render(m.note))
	}
	return bar
}
