package handler

import (
	"net/http"

	"boardroom/internal/app/asset"
	"boardroom/internal/pkg/errs"
	"boardroom/internal/pkg/logx"
	"boardroom/internal/pkg/req"
	"boardroom/internal/pkg/resp"
)

// HandleListAssets returns every asset, newest first.
func HandleListAssets(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assets, err := deps.Assets.List(r.Context())
		if err != nil {
			respondErr(w, r, err)
			return
		}

		items := make([]asset.View, 0, len(assets))
		for _, a := range assets {
			items = append(items, a.View())
		}
		resp.RespondSuccess(w, r, map[string]any{"items": items})
	}
}

// HandleUploadAsset stores a multipart upload with fields type, name and file.
func HandleUploadAsset(deps *AppDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, ok := CurrentUser(r)
		if !ok {
			unauthorized(w, r)
			return
		}

		if customErr := req.SetupMultipart(w, r); customErr != nil {
			resp.RespondError(w, r, customErr)
			return
		}
		defer func() {
			if r.MultipartForm != nil {
				_ = r.MultipartForm.RemoveAll()
			}
		}()

		file, header, err := r.FormFile("file")
		if err != nil {
			resp.RespondError(w, r, errs.NewError(errs.ErrAssetFileMissing))
			return
		}
		defer file.Close()

		created, err := deps.Assets.Upload(r.Context(), asset.UploadInput{
			Type:        r.FormValue("type"),
			Name:        r.FormValue("name"),
			ContentType: header.Header.Get("Content-Type"),
			Body:        file,
			UploaderID:  u.ID,
		})
		if err != nil {
			customErr := toCustomError(err)
			if customErr.Code == errs.ErrUnknown {
				logx.Error(err, "asset upload: storage failed", "user_id", u.ID)
				customErr = errs.NewError(errs.ErrFileStorageFailed)
			}
			resp.RespondError(w, r, customErr)
			return
		}

		resp.RespondCreated(w, r, created.View())
	}
}
