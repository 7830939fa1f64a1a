package fetch

import "sync/atomic"

// defaultAgents is a small pool of current desktop browser User-Agent
// strings. Rotation happens per request so a burst of probes against one
// provider does not present a single fingerprint.
var defaultAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.5 Safari/605.1.15",
}

// agentPool hands out User-Agent strings round-robin.
type agentPool struct {
	agents []string
	next   atomic.Uint64
}

func newAgentPool(agents []string) *agentPool {
	if len(agents) == 0 {
		agents = defaultAgents
	}
	return &agentPool{agents: agents}
}

// Next returns the next agent in rotation.
func (p *agentPool) Next() string {
	n := p.next.Add(1) - 1
	return p.agents[n%uint64(len(p.agents))]
}

// Peek returns the agent the next call to Next would hand out, without
// advancing the rotation. Used for robots.txt matching ahead of the
// actual request.
func (p *agentPool) Peek() string {
	n := p.next.Load()
	return p.agents[n%uint64(len(p.agents))]
}
