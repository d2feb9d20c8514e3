package main

import (
	"flag"
	"fmt"
	"os"

	"colorcloud/internal/camera"
	"colorcloud/internal/colorspace"
	"colorcloud/internal/config"
	"colorcloud/internal/dataset"
	"colorcloud/internal/engine"
	"colorcloud/internal/pick"
	"colorcloud/internal/render"
	"colorcloud/internal/search"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const tps = 60

func main() {
	configFile := flag.String("config", "", "Path to config.json file")
	dataCSV := flag.String("data", "", "Path to the color CSV dataset")
	space := flag.String("space", "", "Color space: lab or rgb (default: lab)")
	flag.Parse()

	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}
	cfg.Resolve(config.Flags{DataCSV: *dataCSV, Space: *space})

	if cfg.DataCSV == "" {
		fmt.Fprintln(os.Stderr, "Error: no dataset. Use -data flag or config.json.")
		os.Exit(1)
	}

	records, err := dataset.LoadFile(cfg.DataCSV, func(pct float64, msg string) {
		fmt.Printf("  [%3.0f%%] %s\n", pct, msg)
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading dataset: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Dataset: %d records\n", len(records))

	sp, ok := colorspace.ByName(cfg.Space)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown color space %q\n", cfg.Space)
		os.Exit(1)
	}

	g := newGame(records, sp, cfg)

	ebiten.SetWindowTitle("colorcloud")
	ebiten.SetWindowSize(cfg.WindowWidth, cfg.WindowHeight)
	ebiten.SetTPS(tps)
	if err := ebiten.RunGame(g); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

type game struct {
	eng     *engine.Engine
	records []dataset.Record

	w, h  int
	fb    *render.FrameBuffer
	fbImg *ebiten.Image

	dragging     bool
	lastX, lastY int

	searchMode bool
	query      []rune
	results    []search.Match

	progress string
	selected int
}

func newGame(records []dataset.Record, sp colorspace.Space, cfg config.Config) *game {
	g := &game{
		records:  records,
		w:        cfg.WindowWidth,
		h:        cfg.WindowHeight,
		selected: pick.NoHit,
	}
	g.eng = engine.New(records, sp, engine.Notifier{
		SelectionChanged: func(index int) { g.selected = index },
		Progress: func(pct float64, msg string) {
			if pct < 100 {
				g.progress = fmt.Sprintf("%s (%.0f%%)", msg, pct)
			} else {
				g.progress = ""
			}
		},
		SearchResults: func(matches []search.Match) {
			g.results = matches
			// Top entry is the preview selection.
			if len(matches) > 0 {
				g.eng.Select(matches[0].Index)
			}
		},
	})
	if cfg.HideUnflagged {
		g.eng.SetHideUnflagged(true)
	}
	return g
}

func (g *game) Update() error {
	if g.searchMode {
		g.updateSearch()
	} else {
		g.updateNavigation()
	}

	// Wheel zoom always pre-empts an automatic fly-in.
	if _, wy := ebiten.Wheel(); wy != 0 {
		g.eng.Rig.Zoom(-wy * 0.4)
	}

	// Secondary-button drag orbits the camera.
	x, y := ebiten.CursorPosition()
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight) {
		if g.dragging {
			g.eng.Rig.Drag(float64(x-g.lastX), float64(y-g.lastY))
		}
		g.dragging = true
	} else {
		g.dragging = false
	}
	g.lastX, g.lastY = x, y

	// Primary click picks the point under the cursor.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.eng.Select(g.eng.PickAt(x, y, g.w, g.h))
	}

	g.eng.Step(1.0/tps, g.heldMove())
	return nil
}

func (g *game) heldMove() camera.Move {
	if g.searchMode {
		return camera.Move{}
	}
	return camera.Move{
		Forward: ebiten.IsKeyPressed(ebiten.KeyW),
		Back:    ebiten.IsKeyPressed(ebiten.KeyS),
		Left:    ebiten.IsKeyPressed(ebiten.KeyA),
		Right:   ebiten.IsKeyPressed(ebiten.KeyD),
		Up:      ebiten.IsKeyPressed(ebiten.KeyE),
		Down:    ebiten.IsKeyPressed(ebiten.KeyQ),
	}
}

func (g *game) updateNavigation() {
	if inpututil.IsKeyJustPressed(ebiten.KeySlash) {
		g.searchMode = true
		g.query = g.query[:0]
		g.results = nil
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.eng.SetHideUnflagged(!g.eng.Cloud.HideUnflagged())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyX) {
		g.eng.SetAxesVisible(true)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.eng.SetAxesVisible(false)
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.eng.SetSpace("lab")
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.eng.SetSpace("rgb")
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) && g.selected >= 0 {
		g.eng.FlyToIndex(g.selected)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.eng.Select(pick.NoHit)
	}
}

func (g *game) updateSearch() {
	before := string(g.query)

	g.query = append(g.query, ebiten.AppendInputChars(nil)...)
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) && len(g.query) > 0 {
		g.query = g.query[:len(g.query)-1]
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.searchMode = false
		g.results = nil
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		if len(g.results) > 0 {
			g.eng.FlyToIndex(g.results[0].Index)
		}
		g.searchMode = false
		return
	}

	if q := string(g.query); q != before {
		g.eng.SubmitQuery(q)
	}
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.fb == nil || g.fb.Width != g.w || g.fb.Height != g.h {
		g.fb = render.NewFrameBuffer(g.w, g.h)
		if g.fbImg != nil {
			g.fbImg.Deallocate()
		}
		g.fbImg = ebiten.NewImage(g.w, g.h)
	}

	g.eng.Render(g.fb)
	g.fbImg.WritePixels(g.fb.Color)
	screen.DrawImage(g.fbImg, nil)

	g.drawOverlay(screen)
}

func (g *game) drawOverlay(screen *ebiten.Image) {
	line := 0
	put := func(s string) {
		ebitenutil.DebugPrintAt(screen, s, 8, 8+line*16)
		line++
	}

	if g.progress != "" {
		put(g.progress)
	}
	if g.selected >= 0 && g.selected < len(g.records) {
		rec := g.records[g.selected]
		put(fmt.Sprintf("%s  #%s", rec.Name, rec.Hex))
	}
	if g.searchMode {
		put("search: " + string(g.query))
		n := len(g.results)
		if n > 5 {
			n = 5
		}
		for _, m := range g.results[:n] {
			rec := g.records[m.Index]
			put(fmt.Sprintf("  %s  #%s", rec.Name, rec.Hex))
		}
	}
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.w, g.h = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}
