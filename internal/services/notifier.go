package services

import (
	"log"
	"sync"

	"kwikwork/internal/utils"
)

// Notification is one outbound email about an application decision.
type Notification struct {
	Recipient string
	Subject   string
	Message   string
}

// Notifier drains a bounded queue of decision emails with a small worker
// pool so the request path never waits on SMTP. A full queue drops the
// notification; the application state is already committed and the user
// sees it in the app either way.
type Notifier struct {
	mailConfig  utils.MailConfig
	queue       chan Notification
	workerCount int
	stopChan    chan struct{}
	wg          sync.WaitGroup
	running     bool
	mu          sync.RWMutex
}

func NewNotifier(workerCount int) *Notifier {
	if workerCount <= 0 {
		workerCount = 3
	}
	return &Notifier{
		mailConfig:  utils.LoadMailConfig(),
		queue:       make(chan Notification, 100),
		workerCount: workerCount,
		stopChan:    make(chan struct{}),
	}
}

func (n *Notifier) Start() {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.running {
		return
	}
	n.running = true

	for i := 0; i < n.workerCount; i++ {
		n.wg.Add(1)
		go n.worker(i)
	}
	log.Printf("Notifier started with %d workers", n.workerCount)
}

func (n *Notifier) Stop() {
	n.mu.Lock()
	if !n.running {
		n.mu.Unlock()
		return
	}
	n.running = false
	n.mu.Unlock()

	close(n.stopChan)
	n.wg.Wait()
	log.Println("Notifier stopped")
}

// Enqueue queues a notification without blocking. Returns false if the
// notifier is stopped or the queue is full.
func (n *Notifier) Enqueue(notification Notification) bool {
	n.mu.RLock()
	defer n.mu.RUnlock()
	if !n.running {
		return false
	}

	select {
	case n.queue <- notification:
		return true
	default:
		log.Printf("Notification queue full, dropping email to %s", notification.Recipient)
		return false
	}
}

func (n *Notifier) worker(id int) {
	defer n.wg.Done()

	for {
		select {
		case <-n.stopChan:
			return
		case notification := <-n.queue:
			if err := utils.SendEmail(n.mailConfig, notification.Recipient, notification.Subject, notification.Message); err != nil {
				log.Printf("Worker %d: failed to send notification to %s: %v", id, notification.Recipient, err)
			}
		}
	}
}
