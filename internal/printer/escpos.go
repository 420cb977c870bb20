package printer

// ESC/POS command sequences understood by common USB thermal receipt
// printers.
var (
	escInit       = []byte{0x1b, 0x40}       // ESC @  reset
	escBoldOn     = []byte{0x1b, 0x45, 0x01} // ESC E 1
	escBoldOff    = []byte{0x1b, 0x45, 0x00} // ESC E 0
	escDoubleOn   = []byte{0x1d, 0x21, 0x11} // GS ! double width+height
	escDoubleOff  = []byte{0x1d, 0x21, 0x00} // GS ! normal
	escAlignLeft  = []byte{0x1b, 0x61, 0x00} // ESC a 0
	escAlignMid   = []byte{0x1b, 0x61, 0x01} // ESC a 1
	escFeed       = []byte{0x1b, 0x64, 0x04} // ESC d 4  feed 4 lines
	escCutPartial = []byte{0x1d, 0x56, 0x01} // GS V 1
)
