package apitest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/go-ports/pantry/internal/models"
)

// table is an ordered in-memory collection keyed by ID. Callers hold the
// server mutex.
type table[T any] struct {
	items []T
	idOf  func(*T) *models.ID
}

func (t *table[T]) list() []T {
	out := make([]T, len(t.items))
	copy(out, t.items)
	return out
}

func (t *table[T]) insert(v T, id models.ID) T {
	*t.idOf(&v) = id
	t.items = append(t.items, v)
	return v
}

func (t *table[T]) replace(id models.ID, v T) (T, bool) {
	for i := range t.items {
		if *t.idOf(&t.items[i]) == id {
			*t.idOf(&v) = id
			t.items[i] = v
			return v, true
		}
	}
	return v, false
}

func (t *table[T]) remove(id models.ID) bool {
	for i := range t.items {
		if *t.idOf(&t.items[i]) == id {
			t.items = append(t.items[:i], t.items[i+1:]...)
			return true
		}
	}
	return false
}

// mount registers list/create/delete (and update when updatable) routes for
// one collection.
func mount[T any](g *gin.RouterGroup, path string, s *Server, t *table[T], updatable bool) {
	g.GET(path, func(c *gin.Context) {
		s.mu.Lock()
		items := t.list()
		s.mu.Unlock()
		c.JSON(http.StatusOK, items)
	})

	g.POST(path, func(c *gin.Context) {
		var v T
		if err := c.ShouldBindJSON(&v); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}
		s.mu.Lock()
		created := t.insert(v, s.newID())
		s.mu.Unlock()
		c.JSON(http.StatusCreated, created)
	})

	if updatable {
		g.PUT(path+"/:id", func(c *gin.Context) {
			var v T
			if err := c.ShouldBindJSON(&v); err != nil {
				c.String(http.StatusBadRequest, err.Error())
				return
			}
			s.mu.Lock()
			updated, ok := t.replace(models.ID(c.Param("id")), v)
			s.mu.Unlock()
			if !ok {
				c.String(http.StatusNotFound, "no such item")
				return
			}
			c.JSON(http.StatusOK, updated)
		})
	}

	g.DELETE(path+"/:id", func(c *gin.Context) {
		s.mu.Lock()
		ok := t.remove(models.ID(c.Param("id")))
		s.mu.Unlock()
		if !ok {
			c.String(http.StatusNotFound, "no such item")
			return
		}
		c.Status(http.StatusNoContent)
	})
}
