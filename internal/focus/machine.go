package focus

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"orbit-gallery/internal/camera"
	"orbit-gallery/internal/clock"
	"orbit-gallery/internal/gallery"
	"orbit-gallery/internal/logger"
	"orbit-gallery/internal/tween"
)

const ringIntro = "ring.intro"

// Source is the live item collection.
type Source interface {
	Items() []*gallery.Item
}

// Lockable is a camera control that focus disables while active.
type Lockable interface {
	Enabled() bool
	SetEnabled(bool)
}

// Placer reports where an item belongs when it is not focused. Restores home in on it.
type Placer interface {
	Placement(it *gallery.Item) mgl32.Vec3
}

type ringSlot struct {
	item *gallery.Item
	base float32
	from mgl32.Vec3
}

// Machine owns the focused item and its ring of related items.
// It is driven from the frame loop and is not safe for concurrent use.
type Machine struct {
	opts   Options
	items  Source
	cam    *camera.Camera
	tweens *tween.Engine
	tp     clock.TimeProvider
	log    *logger.Logger

	controls    Lockable
	unlockTo    bool
	placer      Placer
	subscribers []func(Event)

	mode       Mode
	focused    *gallery.Item
	ring       []ringSlot
	background []*gallery.Item
	ringCenter mgl32.Vec3
	ringAngle  float32
	ringSpeed  float64
	ringVel    float64
	intro      float32
	hovering   bool
	pointer    mgl32.Vec2
	pointerIn  bool

	lastDown time.Time
	downSeen bool
	cursor   int
}

// NewMachine returns an unfocused machine. log may be nil.
func NewMachine(opts Options, items Source, cam *camera.Camera, tweens *tween.Engine, tp clock.TimeProvider, log *logger.Logger) *Machine {
	return &Machine{
		opts:   opts,
		items:  items,
		cam:    cam,
		tweens: tweens,
		tp:     tp,
		log:    log,
		cursor: -1,
	}
}

// SetControls registers the camera control to lock while focused.
func (m *Machine) SetControls(c Lockable) {
	m.controls = c
}

// SetPlacer registers where restored items should glide back to.
func (m *Machine) SetPlacer(p Placer) {
	m.placer = p
}

// Active reports whether an item is focused.
func (m *Machine) Active() bool {
	return m.mode == Focused
}

// Mode returns the current state.
func (m *Machine) Mode() Mode {
	return m.mode
}

// Focused returns the focused item, or nil.
func (m *Machine) Focused() *gallery.Item {
	return m.focused
}

// Ring returns the ring members in slot order.
func (m *Machine) Ring() []*gallery.Item {
	out := make([]*gallery.Item, len(m.ring))
	for i, s := range m.ring {
		out[i] = s.item
	}
	return out
}

// RingCenter returns the point the ring is laid out around.
func (m *Machine) RingCenter() mgl32.Vec3 {
	return m.ringCenter
}

// RingAngle returns the accumulated ring rotation in radians.
func (m *Machine) RingAngle() float32 {
	return m.ringAngle
}

// Hovering reports whether the pointer is over a ring member.
func (m *Machine) Hovering() bool {
	return m.hovering
}

// Candidates returns the items a pointer-down may hit: every visible item when
// unfocused, the focused item and its ring when focused.
func (m *Machine) Candidates() []*gallery.Item {
	if m.mode == Focused {
		return append([]*gallery.Item{m.focused}, m.Ring()...)
	}
	var out []*gallery.Item
	for _, it := range m.items.Items() {
		if it.Visible {
			out = append(out, it)
		}
	}
	return out
}

// Related returns the visible items sharing a people tag with it, in collection
// order, capped at RelatedMax.
func (m *Machine) Related(it *gallery.Item) []*gallery.Item {
	var out []*gallery.Item
	for _, o := range m.items.Items() {
		if len(out) >= m.opts.RelatedMax {
			break
		}
		if o == it || !o.Visible || !it.Record.Related(o.Record) {
			continue
		}
		out = append(out, o)
	}
	return out
}

// PointerDown handles a press at normalized device coordinates. It reports false
// when the press was swallowed by the debounce window.
func (m *Machine) PointerDown(ndcX, ndcY float32) bool {
	now := m.tp.Now()
	if m.downSeen && now.Sub(m.lastDown) < m.opts.Debounce {
		return false
	}
	m.downSeen = true
	m.lastDown = now

	hit, ok := Pick(m.cam.Ray(ndcX, ndcY), m.Candidates())
	switch {
	case !ok:
		m.ClearFocus()
	case m.mode == Focused && hit == m.focused:
		m.ClearFocus()
	case m.mode == Focused:
		m.switchTo(hit)
	default:
		m.enter(hit, Entered)
	}
	return true
}

// PointerMove records the pointer and updates the hover state used to slow the
// ring. Update repeats the hit test each frame, so a still pointer tracks the
// ring as it turns.
func (m *Machine) PointerMove(ndcX, ndcY float32) {
	m.pointer = mgl32.Vec2{ndcX, ndcY}
	m.pointerIn = true
	m.hover()
}

func (m *Machine) hover() {
	if m.mode != Focused || !m.pointerIn {
		m.hovering = false
		return
	}
	_, m.hovering = Pick(m.cam.Ray(m.pointer.X(), m.pointer.Y()), m.Ring())
}

// Escape clears focus. It does nothing while unfocused.
func (m *Machine) Escape() {
	m.ClearFocus()
}

// Focus focuses it directly, switching if another item is focused. Hidden items
// are refused.
func (m *Machine) Focus(it *gallery.Item) bool {
	if it == nil || !it.Visible {
		return false
	}
	switch {
	case m.mode == Focused && it == m.focused:
	case m.mode == Focused:
		m.switchTo(it)
	default:
		m.enter(it, Entered)
	}
	return true
}

// FocusNext focuses the next visible item in collection order after the last one focused.
func (m *Machine) FocusNext() bool {
	items := m.items.Items()
	for step := 1; step <= len(items); step++ {
		i := (m.cursor + step) % len(items)
		if i < 0 {
			i += len(items)
		}
		if items[i].Visible && items[i] != m.focused {
			return m.Focus(items[i])
		}
	}
	return false
}

// ClearFocus returns every focused and ring item to its saved state and restores
// the background. It does nothing while unfocused.
func (m *Machine) ClearFocus(opts ...ClearOption) {
	var cfg clearConfig
	for _, o := range opts {
		o(&cfg)
	}
	if m.mode != Focused {
		return
	}
	prev := m.focused
	m.exit(cfg.instant)
	m.log.Logf("focus: cleared %s", prev.Record.ID)
	m.emit(Exited, prev)
}

func (m *Machine) switchTo(it *gallery.Item) {
	m.exit(true)
	m.enter(it, Switched)
}

func (m *Machine) enter(it *gallery.Item, kind EventKind) {
	m.mode = Focused
	m.focused = it
	m.hovering = false
	m.ringAngle = 0
	m.ringSpeed = float64(m.opts.RingSpeed)
	m.ringVel = 0
	m.ringCenter = m.cam.Ahead(m.opts.FocusDistance)
	for i, o := range m.items.Items() {
		if o == it {
			m.cursor = i
		}
	}

	m.claim(it, gallery.TierFocused, m.opts.FocusScale, tween.FollowVec3("position", &it.Transform.Position, func() mgl32.Vec3 {
		return m.ringCenter
	}))

	related := m.Related(it)
	m.ring = make([]ringSlot, len(related))
	for i, o := range related {
		m.ring[i] = ringSlot{
			item: o,
			base: 2 * math32.Pi * float32(i) / float32(len(related)),
			from: o.Transform.Position,
		}
		m.claim(o, gallery.TierRing, m.opts.RingScale, nil)
	}

	owned := make(map[*gallery.Item]bool, len(related)+1)
	owned[it] = true
	for _, o := range related {
		owned[o] = true
	}
	m.background = m.background[:0]
	for _, o := range m.items.Items() {
		if owned[o] || !o.Visible {
			continue
		}
		o.Save()
		o.Tier = gallery.TierBackground
		o.DepthTest = false
		o.DepthWrite = false
		o.SetOpacity(m.opts.DimOpacity)
		m.background = append(m.background, o)
	}

	m.intro = 0
	m.tweens.Start(m, m.opts.TweenDuration, nil, tween.Float(ringIntro, &m.intro, 1))

	if m.controls != nil {
		m.unlockTo = m.controls.Enabled()
		m.controls.SetEnabled(false)
	}

	m.log.Logf("focus: %s with %d related", it.Record.ID, len(related))
	m.emit(kind, it)
}

// claim saves it, takes it away from orbit control and starts its scale tween,
// plus any extra property tweens.
func (m *Machine) claim(it *gallery.Item, tier gallery.Tier, scale float32, extra []tween.Property) {
	it.Save()
	it.Locked = true
	m.tweens.Cancel(it)

	s, _ := it.Saved()
	props := append(tween.Vec3("scale", &it.Transform.Scale, s.Transform.Scale.Mul(scale)), extra...)
	m.tweens.Start(it, m.opts.TweenDuration, nil, props...)

	it.Tier = tier
	it.DepthTest = false
	it.DepthWrite = false
}

func (m *Machine) exit(instant bool) {
	m.mode = Unfocused
	m.tweens.Cancel(m)

	m.restore(m.focused, instant)
	for _, s := range m.ring {
		m.restore(s.item, instant)
	}
	for _, o := range m.background {
		if s, ok := o.Saved(); ok {
			o.ApplyMaterial(s)
		}
		if !o.Locked {
			o.Discard()
		}
	}

	m.focused = nil
	m.ring = nil
	m.background = m.background[:0]
	m.hovering = false

	if m.controls != nil {
		m.controls.SetEnabled(m.unlockTo)
	}
}

// restore returns it to its snapshot. Non-instant restores keep it locked until
// the tween lands.
func (m *Machine) restore(it *gallery.Item, instant bool) {
	m.tweens.Cancel(it)
	s, ok := it.Saved()
	if !ok {
		it.Locked = false
		return
	}
	it.Transform.Rotation = s.Transform.Rotation
	it.ApplyMaterial(s)

	if instant || m.opts.TweenDuration <= 0 {
		it.Transform.Position = s.Transform.Position
		it.Transform.Scale = s.Transform.Scale
		it.Discard()
		it.Locked = false
		return
	}

	props := tween.Vec3("scale", &it.Transform.Scale, s.Transform.Scale)
	if m.placer != nil {
		props = append(props, tween.FollowVec3("position", &it.Transform.Position, func() mgl32.Vec3 {
			return m.placer.Placement(it)
		})...)
	} else {
		props = append(props, tween.Vec3("position", &it.Transform.Position, s.Transform.Position)...)
	}
	m.tweens.Start(it, m.opts.TweenDuration, nil, props...).OnDone(func() {
		it.Locked = false
		if !m.owns(it) {
			it.Discard()
		}
	})
}

// owns reports whether it takes part in the current focus.
func (m *Machine) owns(it *gallery.Item) bool {
	if m.mode != Focused {
		return false
	}
	if it == m.focused {
		return true
	}
	for _, s := range m.ring {
		if s.item == it {
			return true
		}
	}
	for _, o := range m.background {
		if o == it {
			return true
		}
	}
	return false
}

// Update recomputes the ring against the current camera and advances its rotation.
// It does nothing while unfocused.
func (m *Machine) Update(dt time.Duration) {
	if m.mode != Focused {
		return
	}
	dir, right, up := m.cam.Basis()
	m.ringCenter = m.cam.Position.Add(dir.Mul(m.opts.FocusDistance))

	if secs := dt.Seconds(); secs > 0 {
		target := float64(m.opts.RingSpeed)
		if m.hovering {
			target = float64(m.opts.HoverSpeed)
		}
		spring := harmonica.NewSpring(secs, m.opts.SpeedFrequency, m.opts.SpeedDamping)
		m.ringSpeed, m.ringVel = spring.Update(m.ringSpeed, m.ringVel, target)
		m.ringAngle += float32(math.Max(m.ringSpeed, 0) * secs)
	}

	if !m.tweens.Active(m.focused) {
		m.focused.Transform.Position = m.ringCenter
	}
	m.focused.FaceCamera(m.cam.Position, up)

	for _, s := range m.ring {
		a := s.base + m.ringAngle
		slot := m.ringCenter.
			Add(right.Mul(math32.Cos(a) * m.opts.RingRadius)).
			Add(up.Mul(math32.Sin(a) * m.opts.RingRadius))
		if m.intro < 1 {
			slot = s.from.Add(slot.Sub(s.from).Mul(m.intro))
		}
		s.item.Transform.Position = slot
		s.item.FaceCamera(m.cam.Position, up)
	}
	m.hover()
}
