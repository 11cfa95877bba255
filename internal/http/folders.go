package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/recetario/internal/favorites"
)

type FoldersController struct {
	store *favorites.Store
}

func NewFoldersController(store *favorites.Store) *FoldersController {
	return &FoldersController{store: store}
}

// ListFolders returns the user's folders in creation order.
// GET /api/folders
func (fc *FoldersController) ListFolders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"folders": fc.store.Folders()})
}

// CreateFolder creates a folder. Duplicate names return the existing folder
// with 200 instead of creating a second one.
// POST /api/folders
func (fc *FoldersController) CreateFolder(c *gin.Context) {
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil || body.Name == "" {
		respondBadRequest(c, "name is required")
		return
	}

	folder, created := fc.store.CreateFolder(c.Request.Context(), body.Name)
	if !created {
		c.JSON(http.StatusOK, folder)
		return
	}
	respondCreated(c, folder)
}

// DeleteFolder deletes a folder; its recipes are reassigned to "no folder".
// DELETE /api/folders/:id
func (fc *FoldersController) DeleteFolder(c *gin.Context) {
	fc.store.DeleteFolder(c.Request.Context(), c.Param("id"))
	respondSuccess(c, "folder deleted")
}

// MoveRecipe assigns a saved recipe to a folder; an empty folderId clears
// the assignment.
// PUT /api/favorites/:name/folder
func (fc *FoldersController) MoveRecipe(c *gin.Context) {
	name := c.Param("name")

	var body struct {
		FolderID string `json:"folderId"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBadRequest(c, "invalid folder payload")
		return
	}

	fc.store.MoveRecipeToFolder(c.Request.Context(), name, body.FolderID)
	c.JSON(http.StatusOK, gin.H{"folderId": fc.store.FolderFor(name)})
}
