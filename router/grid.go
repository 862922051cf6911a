package router

// Grid layout: 64 contiguous notes starting at FirstNote, 8 scenes per track
const (
	FirstNote = 10
	NumTracks = 8
	NumScenes = 8
)

const (
	noteOnStatus uint8 = 0x90
	statusMask   uint8 = 0xF0
)

// IsNoteOn reports whether status is a note-on on any channel with a
// nonzero velocity
func IsNoteOn(status, velocity uint8) bool {
	return status&statusMask == noteOnStatus && velocity != 0
}

// Coordinate maps a note to (track, scene). Notes below FirstNote give
// negative values: the division floors, the remainder keeps the sign of
// note-FirstNote.
func Coordinate(note uint8) (track, scene int) {
	offset := int(note) - FirstNote
	track = offset / NumScenes
	if offset < 0 && offset%NumScenes != 0 {
		track--
	}
	scene = offset % NumScenes
	return track, scene
}

// InBounds is the launch guard. It only rejects indices above the grid;
// negative indices pass.
func InBounds(track, scene int) bool {
	return track <= NumTracks-1 && scene <= NumScenes-1
}
