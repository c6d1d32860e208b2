package logic

// MotorSpeed holds the selected fan motor speed.
type MotorSpeed struct {
	speed Speed
}

// Change advances to the next speed in the cycle.
func (m *MotorSpeed) Change() {
	m.speed = m.speed.Next()
}

// Get returns the current speed.
func (m *MotorSpeed) Get() Speed {
	return m.speed
}

// Set applies s. Undefined speeds are ignored.
func (m *MotorSpeed) Set(s Speed) {
	if s.Valid() {
		m.speed = s
	}
}

// Text returns the display label of the current speed.
func (m *MotorSpeed) Text() string {
	return m.speed.String()
}

// TurnOff forces the motor off.
func (m *MotorSpeed) TurnOff() {
	m.Set(SpeedOff)
}

// Pump holds the selected pump state.
type Pump struct {
	state PumpState
}

// Change toggles the pump.
func (p *Pump) Change() {
	p.state = p.state.Next()
}

// Get returns the current pump state.
func (p *Pump) Get() PumpState {
	return p.state
}

// Set applies s. Undefined states are ignored.
func (p *Pump) Set(s PumpState) {
	if s.Valid() {
		p.state = s
	}
}

// Text returns the display label of the current state.
func (p *Pump) Text() string {
	return p.state.String()
}

// TurnOff forces the pump off.
func (p *Pump) TurnOff() {
	p.Set(PumpOff)
}
