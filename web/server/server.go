package server

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"image/png"
	"log"
	"net/http"
	"time"

	"github.com/df07/go-light-simulator/pkg/core"
	"github.com/df07/go-light-simulator/pkg/geometry"
	"github.com/df07/go-light-simulator/pkg/scene"
	"github.com/df07/go-light-simulator/pkg/simulator"
	"github.com/df07/go-light-simulator/pkg/surface"
)

// Server serves live frames from a light simulator over HTTP
type Server struct {
	port   int
	config simulator.Config
}

// NewServer creates a new web server
func NewServer(port int, config simulator.Config) *Server {
	return &Server{port: port, config: config}
}

// Start runs the HTTP server until it fails
func (s *Server) Start() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/frame", s.handleFrame)
	mux.HandleFunc("/stream", s.handleStream)

	addr := fmt.Sprintf(":%d", s.port)
	return http.ListenAndServe(addr, mux)
}

// FrameUpdate is a single frame sent via SSE
type FrameUpdate struct {
	FrameNumber int    `json:"frameNumber"`
	ImageData   string `json:"imageData"` // Base64 encoded PNG
	Segments    int    `json:"segments"`
	ElapsedMs   int64  `json:"elapsedMs"`
}

// handleIndex serves a minimal page that connects to the frame stream
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, indexPage)
}

// handleFrame traces one frame of the requested scene and returns it as PNG
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	selectedScene, err := sceneFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	target := surface.NewCPUSurface(800, 800, core.NewVec2(-50, -50), core.NewVec2(50, 50))
	sim := simulator.New(target, s.config, webLogger{})
	sim.Reset(selectedScene)
	for sim.PendingWork() > 0 {
		time.Sleep(time.Millisecond)
	}
	sim.Stop()

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, target.Image()); err != nil {
		log.Printf("Error encoding frame: %v", err)
	}
}

// handleStream streams frames of an animated scene via Server-Sent Events
func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming not supported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	target := surface.NewCPUSurface(800, 800, core.NewVec2(-50, -50), core.NewVec2(50, 50))
	sim := simulator.New(target, s.config, webLogger{})
	defer sim.Stop()

	ctx := r.Context()
	startTime := time.Now()
	angle := 0.0

	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for frame := 1; ; frame++ {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		angle += 0.05
		target.Clear()
		sim.Reset(orbitingScene(angle))

		// Let the pool drain most of the budget before snapshotting
		deadline := time.Now().Add(80 * time.Millisecond)
		for sim.PendingWork() > 0 && time.Now().Before(deadline) {
			time.Sleep(time.Millisecond)
		}

		update, err := encodeFrame(target, frame, startTime)
		if err != nil {
			log.Printf("Error encoding frame %d: %v", frame, err)
			return
		}
		if err := writeSSEEvent(w, update); err != nil {
			// Client went away
			return
		}
		flusher.Flush()
	}
}

// encodeFrame packs the surface's current image into a FrameUpdate
func encodeFrame(target *surface.CPUSurface, frame int, startTime time.Time) (FrameUpdate, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, target.Image()); err != nil {
		return FrameUpdate{}, err
	}
	return FrameUpdate{
		FrameNumber: frame,
		ImageData:   base64.StdEncoding.EncodeToString(buf.Bytes()),
		Segments:    target.SegmentCount(),
		ElapsedMs:   time.Since(startTime).Milliseconds(),
	}, nil
}

func writeSSEEvent(w http.ResponseWriter, update FrameUpdate) error {
	data, err := json.Marshal(update)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "data: %s\n\n", data)
	return err
}

// sceneFromQuery picks a built-in scene from the request's scene parameter
func sceneFromQuery(r *http.Request) (*scene.Scene, error) {
	name := r.URL.Query().Get("scene")
	if name == "" {
		name = "default"
	}
	switch name {
	case "default":
		return scene.NewDefaultScene(), nil
	case "prism":
		return scene.NewPrismScene(), nil
	default:
		return nil, fmt.Errorf("unknown scene: %s", name)
	}
}

// orbitingScene animates the default arrangement by circling the emitter
func orbitingScene(angle float64) *scene.Scene {
	s := scene.NewDefaultScene()

	// Replace the emitter with one at the orbit position
	animated := scene.NewScene()
	for _, obj := range s.Objects() {
		if _, isEmitter := obj.Interaction.(scene.Emitter); isEmitter {
			continue
		}
		if err := animated.Add(obj); err != nil {
			log.Printf("Error rebuilding scene: %v", err)
		}
	}

	pos := core.UnitFromAngle(angle).Multiply(25)
	if err := addEmitter(animated, pos); err != nil {
		log.Printf("Error placing emitter: %v", err)
	}
	return animated
}

func addEmitter(s *scene.Scene, pos core.Vec2) error {
	circle, err := geometry.NewCircle(pos, 3)
	if err != nil {
		return err
	}
	return s.Add(scene.Object{
		ID:          1000,
		Shape:       circle,
		Interaction: scene.Emitter{Color: core.NewColor(255, 210, 140)},
	})
}

// webLogger routes tracer output through the standard log package
type webLogger struct{}

func (webLogger) Printf(format string, args ...interface{}) {
	log.Printf(format, args...)
}

const indexPage = `<!DOCTYPE html>
<html>
<head><title>Light Ray Simulator</title></head>
<body style="background:#111;color:#ddd;font-family:monospace">
<h3>Light Ray Simulator</h3>
<p id="stats"></p>
<img id="frame" width="800" height="800"/>
<script>
const source = new EventSource('/stream');
source.onmessage = (e) => {
  const update = JSON.parse(e.data);
  document.getElementById('frame').src = 'data:image/png;base64,' + update.imageData;
  document.getElementById('stats').textContent =
    'frame ' + update.frameNumber + ' | ' + update.segments + ' segments | ' + update.elapsedMs + ' ms';
};
</script>
</body>
</html>`
