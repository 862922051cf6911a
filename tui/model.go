package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"cliplaunch/host"
	"cliplaunch/midi"
	"cliplaunch/router"
	"cliplaunch/theme"
	"cliplaunch/widgets"
)

type Model struct {
	Host      *host.Host
	DeviceMgr *midi.DeviceManager // may be nil
	Theme     *theme.Theme
	Log       *LogPane
	Title     string

	input    string // bound input port, "" when none
	quitting bool
}

type UpdateMsg struct{}

type LogMsg struct{}

type DeviceEventMsg midi.DeviceEvent

func NewModel(h *host.Host, deviceMgr *midi.DeviceManager, th *theme.Theme, log *LogPane) Model {
	return Model{
		Host:      h,
		DeviceMgr: deviceMgr,
		Theme:     th,
		Log:       log,
		Title:     "cliplaunch",
	}
}

func ListenForUpdates(h *host.Host) tea.Cmd {
	return func() tea.Msg {
		<-h.Updates()
		return UpdateMsg{}
	}
}

func ListenForLog(log *LogPane) tea.Cmd {
	return func() tea.Msg {
		<-log.Updates()
		return LogMsg{}
	}
}

func ListenForDevices(deviceMgr *midi.DeviceManager) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-deviceMgr.Events()
		if !ok {
			return nil
		}
		return DeviceEventMsg(event)
	}
}

func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{ListenForUpdates(m.Host), ListenForLog(m.Log)}
	if m.DeviceMgr != nil {
		cmds = append(cmds, ListenForDevices(m.DeviceMgr))
	}
	return tea.Batch(cmds...)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "p", " ":
			if m.Host.Snapshot().Playing {
				m.send(router.Stop)
			} else {
				m.send(router.Play)
			}

		case "s":
			m.send(router.Stop)

		case "r":
			m.send(router.Record)

		case "left", "h":
			m.send(router.Rewind)

		case "right", "l":
			m.send(router.FastForward)
		}

	case UpdateMsg:
		return m, ListenForUpdates(m.Host)

	case LogMsg:
		return m, ListenForLog(m.Log)

	case DeviceEventMsg:
		switch msg.Type {
		case midi.DeviceConnected:
			m.input = msg.ID
		case midi.DeviceDisconnected:
			if m.input == msg.ID {
				m.input = ""
			}
		}
		return m, ListenForDevices(m.DeviceMgr)
	}

	return m, nil
}

// send delivers the MMC message for action through the host, the same path
// MIDI input takes
func (m Model) send(action router.TransportAction) {
	if hex, ok := router.MMCMessage(action); ok {
		m.Host.DeliverSysex(hex)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.Host.Snapshot()

	headerStyle := m.Theme.Style(theme.RoleHeader)
	dimStyle := m.Theme.Style(theme.RoleIdleSlot)
	recStyle := m.Theme.Style(theme.RoleRecording).Bold(true)

	playState := "STOP"
	if snap.Playing {
		playState = "PLAY"
	}
	rec := ""
	if snap.Recording {
		rec = " " + recStyle.Render("REC")
	}

	inputStatus := "in:-"
	if m.input != "" {
		inputStatus = "in:" + m.input
	} else if m.DeviceMgr != nil {
		inputStatus = fmt.Sprintf("in:waiting for %q", m.DeviceMgr.PortName())
	}

	bar, beat := snap.BarBeat()
	header := headerStyle.Render(fmt.Sprintf("%s  %s  %03d.%d  %s", m.Title, playState, bar, beat, inputStatus)) + rec

	var out strings.Builder
	out.WriteString("\n")
	out.WriteString(header)
	out.WriteString("\n\n")
	out.WriteString(m.gridView(snap))
	out.WriteString("\n")
	out.WriteString(m.legendView(snap))
	out.WriteString("\n\n")

	for _, line := range m.Log.Lines() {
		out.WriteString(dimStyle.Render(line))
		out.WriteString("\n")
	}

	out.WriteString("\n")
	out.WriteString(dimStyle.Render(widgets.RenderKeyHelp([]widgets.KeySection{
		{Keys: []widgets.KeyBinding{
			{Key: "p / space", Desc: "play / stop"},
			{Key: "s", Desc: "stop"},
			{Key: "r", Desc: "record"},
			{Key: "left/right", Desc: "rewind / fast forward a bar"},
			{Key: "q", Desc: "quit"},
		}},
	})))

	return out.String()
}

func (m Model) gridView(snap host.Snapshot) string {
	idle := widgets.Pad{Color: m.Theme.RGB(theme.RoleIdleSlot), Symbol: m.Theme.Symbols.Pad}
	playing := widgets.Pad{Color: m.Theme.RGB(theme.RolePlaying), Symbol: m.Theme.Symbols.Playing}

	grid := make([][]widgets.Pad, len(snap.Tracks))
	header := make([]string, len(snap.Tracks))
	for i, t := range snap.Tracks {
		header[i] = t.Name
		grid[i] = make([]widgets.Pad, host.BankScenes)
		for s := range grid[i] {
			grid[i][s] = idle
		}
		if t.Playing >= 0 && t.Playing < host.BankScenes {
			grid[i][t.Playing] = playing
		}
	}
	return widgets.RenderClipGrid(grid, header)
}

func (m Model) legendView(snap host.Snapshot) string {
	launches := 0
	for _, t := range snap.Tracks {
		launches += t.Launches
	}
	idle := widgets.Pad{Color: m.Theme.RGB(theme.RoleIdleSlot), Symbol: m.Theme.Symbols.Pad}
	playing := widgets.Pad{Color: m.Theme.RGB(theme.RolePlaying), Symbol: m.Theme.Symbols.Playing}
	return widgets.RenderLegendItem(playing, "Playing", fmt.Sprintf("%d launches", launches)) + "\n" +
		widgets.RenderLegendItem(idle, "Slot", "stopped or empty")
}
