package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"explainstudio/internal/responses"
	"explainstudio/internal/services"
)

type DatasetHandler struct {
	datasetService *services.DatasetService
}

func NewDatasetHandler(datasetService *services.DatasetService) *DatasetHandler {
	return &DatasetHandler{
		datasetService: datasetService,
	}
}

// UploadDataset handles POST /datasets
func (h *DatasetHandler) UploadDataset(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Missing 'file' upload part")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		responses.Fail(c, http.StatusBadRequest, err, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	dataset, err := h.datasetService.Upload(fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to upload dataset")
		return
	}

	responses.Success(c, http.StatusCreated, dataset, "Dataset uploaded successfully")
}

// ListDatasets handles GET /datasets
func (h *DatasetHandler) ListDatasets(c *gin.Context) {
	datasets := h.datasetService.List()

	responses.Success(c, http.StatusOK, gin.H{"datasets": datasets}, "Datasets retrieved successfully")
}

// GetDataset handles GET /datasets/:id
func (h *DatasetHandler) GetDataset(c *gin.Context) {
	dataset, err := h.datasetService.Get(c.Param("id"))
	if err != nil {
		responses.Fail(c, statusFor(err), err, "Failed to retrieve dataset")
		return
	}

	responses.Success(c, http.StatusOK, dataset, "Dataset retrieved successfully")
}
