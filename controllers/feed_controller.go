package controllers

import (
	"log/slog"
	"net/http"
	"slices"
	"time"

	"github.com/gorilla/websocket"
	"github.com/l3montree-dev/reviewboard/shared"
	"github.com/l3montree-dev/reviewboard/transformer"
	"github.com/labstack/echo/v4"
)

const (
	feedWriteWait  = 10 * time.Second
	feedPongWait   = 60 * time.Second
	feedPingPeriod = feedPongWait * 9 / 10
)

type FeedController struct {
	feed     shared.ApplicationFeed
	upgrader websocket.Upgrader
}

func NewFeedController(feed shared.ApplicationFeed) *FeedController {
	origins := shared.AllowedOrigins()
	return &FeedController{
		feed: feed,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || slices.Contains(origins, origin)
			},
		},
	}
}

// Stream upgrades to a websocket and writes a snapshot of the dashboard
// after every change until the client goes away. When the store stops
// notifying, the final snapshot is followed by a 1011 close frame.
func (c *FeedController) Stream(ctx shared.Context) error {
	statusFilter, err := shared.GetStatusFilter(ctx)
	if err != nil {
		return echo.NewHTTPError(400, err.Error())
	}

	viewer := shared.GetViewer(ctx)
	// subscribe before the upgrade so failures are still plain http errors
	sub, err := c.feed.Subscribe(ctx.Request().Context(), viewer, statusFilter)
	if err != nil {
		return httpError(err, "could not open the application feed")
	}
	defer sub.Cancel()

	conn, err := c.upgrader.Upgrade(ctx.Response(), ctx.Request(), nil)
	if err != nil {
		// the upgrader already replied
		slog.Warn("could not upgrade feed connection", "err", err)
		return nil
	}
	defer conn.Close()

	gone := make(chan struct{})
	go func() {
		defer close(gone)
		_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
		conn.SetPongHandler(func(string) error {
			return conn.SetReadDeadline(time.Now().Add(feedPongWait))
		})
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(feedPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-gone:
			slog.Debug("feed client disconnected", "user", viewer.UserID)
			return nil
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return nil
			}
		case snapshot, ok := <-sub.Snapshots():
			if !ok {
				// the upstream ended, the client has to reconnect
				_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "live updates ended"), time.Now().Add(feedWriteWait))
				return nil
			}
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteJSON(transformer.FeedSnapshotToDTO(snapshot)); err != nil {
				slog.Debug("could not write feed snapshot", "err", err)
				return nil
			}
		}
	}
}
