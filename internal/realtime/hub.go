package realtime

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/SlpAus/clone-pool-backend/internal/account"
	"github.com/SlpAus/clone-pool-backend/pkg/lifecycle"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StatusChangeMessage 是推送给所有查看端的状态变更通知。
// 通知是幂等的：把列出的id置为给定状态，重复应用无副作用。
type StatusChangeMessage struct {
	Type       string `json:"type"`
	EntityType string `json:"entityType"`
	AccountIDs []uint `json:"accountIds"`
	NewStatus  bool   `json:"newStatus"`
	Timestamp  int64  `json:"timestamp"`
}

// Client 是一个已连接的查看端。
type Client struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

// Hub 维护全部已连接的查看端并向它们广播状态变更。
// 广播通道只读共享给查看端，查看端不能通过它写入任何数据。
type Hub struct {
	mu        sync.RWMutex
	clients   map[*Client]bool
	broadcast chan []byte
}

// NewHub 创建一个空的广播中心。
func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*Client]bool),
		broadcast: make(chan []byte, 256),
	}
}

// PublishStatusChange 实现account.Notifier。
// 投递是尽力而为的：通道已满时直接丢弃，查看端靠下一次完整拉取自愈。
func (h *Hub) PublishStatusChange(pool account.Pool, ids []uint, status bool, at time.Time) {
	msg := StatusChangeMessage{
		Type:       "status_change",
		EntityType: string(pool),
		AccountIDs: ids,
		NewStatus:  status,
		Timestamp:  at.UnixMilli(),
	}
	data, err := json.Marshal(msg)
	if err != nil {
		fmt.Printf("序列化状态广播失败: %v\n", err)
		return
	}

	select {
	case h.broadcast <- data:
	default:
		fmt.Println("警告: 广播通道已满，本次状态通知被丢弃")
	}
}

// Run 消费广播通道并把消息分发给所有查看端。
// 收到停机信号后关闭全部连接并退出。
func (h *Hub) Run(handle *lifecycle.Handle) {
	defer handle.Close()
	fmt.Println("状态广播中心已启动。")

	for {
		select {
		case <-handle.Done():
			h.closeAll()
			fmt.Println("状态广播中心已退出。")
			return
		case data := <-h.broadcast:
			h.mu.RLock()
			for client := range h.clients {
				select {
				case client.send <- data:
				default:
					// 发送队列已满的慢客户端直接放弃这条消息
				}
			}
			h.mu.RUnlock()
		}
	}
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		close(client.send)
		delete(h.clients, client)
	}
}

// ServeWS 把一个HTTP请求升级为查看端长连接。
func (h *Hub) ServeWS(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		fmt.Println("WebSocket升级失败:", err)
		return
	}

	client := &Client{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, 64),
	}

	h.mu.Lock()
	h.clients[client] = true
	h.mu.Unlock()
	fmt.Printf("查看端 %s 已连接。\n", client.id)

	go client.writePump()
	client.readPump(h)
}

// readPump 只负责消费控制帧并在连接断开时清理。
// 查看端不被允许通过这条连接写入业务数据。
func (c *Client) readPump(h *Hub) {
	defer func() {
		h.mu.Lock()
		if _, ok := h.clients[c]; ok {
			delete(h.clients, c)
			close(c.send)
		}
		h.mu.Unlock()
		c.conn.Close()
		fmt.Printf("查看端 %s 已断开。\n", c.id)
	}()

	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
