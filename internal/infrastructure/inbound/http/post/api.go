package post_http

import (
	post_service "board-post-service/internal/domain/ports/input/post"
	ports "board-post-service/internal/domain/ports/output"
	"board-post-service/internal/domain/ports/output/upload"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type PostHTTPAPI struct {
	mainPage     *MainPageHandler
	create       *CreatePostHandler
	list         *ListPostsHandler
	listInterest *ListInterestPostsHandler
	get          *GetPostHandler
	update       *UpdatePostHandler
	delete       *DeletePostHandler
}

func NewPostHTTPAPI(service post_service.Service, uploader upload.Uploader, validate *validator.Validate, log ports.Logger) *PostHTTPAPI {
	return &PostHTTPAPI{
		mainPage:     NewMainPageHandler(service, log),
		create:       NewCreatePostHandler(service, uploader, validate, log),
		list:         NewListPostsHandler(service, validate, log),
		listInterest: NewListInterestPostsHandler(service, log),
		get:          NewGetPostHandler(service, log),
		update:       NewUpdatePostHandler(service, log),
		delete:       NewDeletePostHandler(service, log),
	}
}

// RegisterRoutes mounts the board routes. authMW guards every mutation and the
// interest feed; uploadMW runs after auth on create only.
func (a *PostHTTPAPI) RegisterRoutes(r gin.IRouter, authMW gin.HandlerFunc, uploadMW gin.HandlerFunc) {
	r.GET("/main", a.mainPage.MainPage)

	posts := r.Group("/posts")
	{
		posts.GET("", a.list.ListPosts)
		posts.GET("/:postId", a.get.GetPost)
		posts.GET("/category/interest", authMW, a.listInterest.ListInterestPosts)
		posts.POST("", authMW, uploadMW, a.create.CreatePost)
		posts.PUT("/:postId", authMW, a.update.UpdatePost)
		posts.DELETE("/:postId", authMW, a.delete.DeletePost)
	}
}
